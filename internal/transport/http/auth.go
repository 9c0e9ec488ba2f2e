package http

import (
	"log/slog"
	"net/http"

	"equestrian/internal/lib/logger/sl"
	"equestrian/internal/middleware"
	"equestrian/internal/transport/http/dto"
	"equestrian/internal/transport/http/dto/request"
	"equestrian/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// Login godoc
// @Summary Аутентификация пользователя
// @Description Вход по имени пользователя или email. Токены возвращаются в теле и в HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Данные для входа"
// @Success 200 {object} response.Response{data=map[string]string} "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} response.ErrorResponse "Ошибка аутентификации"
// @Failure 429 {object} response.ErrorResponse "Слишком много попыток"
// @Router /api/v1/auth/token [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid format request", slog.String("identifier", req.Identifier))
		return r.invalidRequest(c, err)
	}

	pair, err := r.UserService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return r.fail(c, log, err)
	}

	middleware.SetTokenCookies(c, pair, r.cookies)

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{
		"user_id":       pair.UserID.String(),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}))
}

// Refresh godoc
// @Summary Обновление пары токенов
// @Description Refresh-токен берется из тела запроса или из cookie. Старый токен отзывается.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshRequest false "Refresh-токен"
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 401 {object} response.ErrorResponse "Токен недействителен"
// @Router /api/v1/auth/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	log := r.log.With(
		slog.String("op", op),
	)

	token := refreshToken(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails(
			"authentication_failed", "refresh token is missing",
		))
	}

	pair, err := r.TokenService.RefreshTokens(c.Request().Context(), token)
	if err != nil {
		middleware.ClearTokenCookies(c, r.cookies)
		return r.fail(c, log, err)
	}

	middleware.SetTokenCookies(c, pair, r.cookies)

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]string{
		"user_id":       pair.UserID.String(),
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}))
}

// Logout godoc
// @Summary Выход
// @Description Отзывает refresh-токен и очищает cookie
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/auth/logout [post]
func (r *Routers) Logout(c echo.Context) error {
	const op = "http.routers.Logout"

	log := r.log.With(
		slog.String("op", op),
	)

	if token := refreshToken(c); token != "" {
		if err := r.TokenService.Revoke(c.Request().Context(), token); err != nil {
			log.Warn("failed to revoke refresh token", sl.Err(err))
		}
	}

	middleware.ClearTokenCookies(c, r.cookies)

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "logged out"})
}

func refreshToken(c echo.Context) string {
	var req request.RefreshRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err == nil && req.RefreshToken != "" {
			return req.RefreshToken
		}
	}
	if cookie, err := c.Cookie(middleware.RefreshCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// Me godoc
// @Summary Текущий пользователь
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response{data=models.User}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/v1/auth/me [get]
func (r *Routers) Me(c echo.Context) error {
	const op = "http.routers.Me"

	log := r.log.With(
		slog.String("op", op),
	)

	id, _ := middleware.IdentityFrom(c)

	user, err := r.UserService.GetUserByID(c.Request().Context(), id.UserID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(user))
}

// CreateUser godoc
// @Summary Создание пользователя
// @Description Доступно администраторам. Возвращает ID пользователя.
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterInput true "Данные пользователя"
// @Success 201 {object} response.Response{data=object{user_id=string}} "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 409 {object} response.ErrorResponse "Пользователь уже существует"
// @Router /api/v1/users [post]
func (r *Routers) CreateUser(c echo.Context) error {
	const op = "http.routers.CreateUser"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.UserRegisterInput

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRegisterRequest)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid register request", slog.String("username", req.Username))
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(
			response.ErrInvalidRegisterRequest.Error, err.Error(),
		))
	}

	userID, err := r.UserService.RegisterUser(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(map[string]string{
		"user_id": userID.String(),
	}))
}

// GetUser godoc
// @Summary Получение пользователя по ID
// @Tags users
// @Produce json
// @Param user_id path string true "ID пользователя"
// @Success 200 {object} response.Response{data=models.User}
// @Failure 400 {object} response.ErrorResponse "Неверный ID"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /api/v1/users/{user_id} [get]
func (r *Routers) GetUser(c echo.Context) error {
	const op = "http.routers.GetUser"

	log := r.log.With(
		slog.String("op", op),
	)

	userID, err := pathUUID(c, "user_id")
	if err != nil {
		return r.invalidID(c, "user_id")
	}

	user, err := r.UserService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(user))
}

// IsAdmin godoc
// @Summary Проверка прав администратора
// @Tags users
// @Produce json
// @Param user_id path string true "ID пользователя"
// @Success 200 {object} response.Response{data=object{is_admin=bool}}
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /api/v1/users/{user_id}/is-admin [get]
func (r *Routers) IsAdmin(c echo.Context) error {
	const op = "http.routers.IsAdmin"

	log := r.log.With(
		slog.String("op", op),
	)

	userID, err := pathUUID(c, "user_id")
	if err != nil {
		return r.invalidID(c, "user_id")
	}

	isAdmin, err := r.UserService.IsAdmin(c.Request().Context(), userID)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(map[string]bool{"is_admin": isAdmin}))
}
