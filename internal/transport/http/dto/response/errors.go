package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status: "error",
		Error:  "authentication_failed",
	}

	ErrForbidden = ErrorResponse{
		Status:  "error",
		Error:   "forbidden",
		Details: "Not enough permissions",
	}

	ErrNotFound = ErrorResponse{
		Status: "error",
		Error:  "not_found",
	}

	ErrAlreadyExists = ErrorResponse{
		Status:  "error",
		Error:   "already_exists",
		Details: "Record with these unique fields already exists",
	}

	ErrInvalidRegisterRequest = ErrorResponse{
		Status:  "error",
		Error:   "invalid_register_request",
		Details: "Invalid registration data",
	}

	ErrUserAlreadyExists = ErrorResponse{
		Status:  "error",
		Error:   "user_already_exists",
		Details: "User with this username or email already exists",
	}

	ErrInternal = ErrorResponse{
		Status: "error",
		Error:  "internal_error",
	}
)
