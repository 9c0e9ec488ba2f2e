package http

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/lib/logger/sl"
	"equestrian/internal/middleware"
	"equestrian/internal/pedigree"
	gallerysvc "equestrian/internal/services/gallery_service"
	horsesvc "equestrian/internal/services/horse_service"
	infosvc "equestrian/internal/services/info_service"
	tokensvc "equestrian/internal/services/token_service"
	usersvc "equestrian/internal/services/user_service"
	"equestrian/internal/storage"
	"equestrian/internal/transport/http/dto"
	"equestrian/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	_ "equestrian/docs"
)

type UserService interface {
	Login(ctx context.Context, identifier, password string) (*models.TokenPair, error)
	RegisterUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type TokenService interface {
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
}

type HorseService interface {
	CreateHorse(ctx context.Context, req dto.CreateHorseRequest, createdBy *uuid.UUID) (uuid.UUID, error)
	UpdateHorse(ctx context.Context, id uuid.UUID, req dto.UpdateHorseRequest) error
	DeleteHorse(ctx context.Context, id uuid.UUID) error
	GetHorse(ctx context.Context, id uuid.UUID, pedigreeDepth string) (horsesvc.HorseDetails, error)
	ListHorses(ctx context.Context, filter models.HorseFilter) ([]horsesvc.HorseDetails, int, error)
	Candidates(ctx context.Context, id uuid.UUID, mode horsesvc.Mode) ([]map[string]any, error)
	AttachPedigree(ctx context.Context, id uuid.UUID, mode horsesvc.Mode, pedHorses []uuid.UUID) error
	DetachPedigree(ctx context.Context, id uuid.UUID, mode horsesvc.Mode, pedHorses []uuid.UUID) error
}

type BreedService interface {
	CreateBreed(ctx context.Context, req dto.BreedRequest) (models.Breed, error)
	UpdateBreed(ctx context.Context, id uuid.UUID, req dto.UpdateBreedRequest) (models.Breed, error)
	DeleteBreed(ctx context.Context, id uuid.UUID) error
	GetBreed(ctx context.Context, id uuid.UUID) (models.Breed, error)
	ListBreeds(ctx context.Context, name string) ([]models.Breed, error)
}

type OwnerService interface {
	CreateOwner(ctx context.Context, req dto.OwnerRequest) (models.HorseOwner, error)
	UpdateOwner(ctx context.Context, id uuid.UUID, req dto.UpdateOwnerRequest) (models.HorseOwner, error)
	DeleteOwner(ctx context.Context, id uuid.UUID) error
	GetOwner(ctx context.Context, id uuid.UUID) (models.HorseOwner, error)
	ListOwners(ctx context.Context, name string, types []models.OwnerType) ([]models.HorseOwner, error)
}

type GalleryService interface {
	UploadPhoto(ctx context.Context, file *multipart.FileHeader, req dto.CreatePhotoRequest) (models.Photo, error)
	UpdatePhoto(ctx context.Context, id uuid.UUID, req dto.UpdatePhotoRequest) (models.Photo, error)
	DeletePhoto(ctx context.Context, id uuid.UUID) error
	GetPhoto(ctx context.Context, id uuid.UUID) (models.Photo, error)
	ListPhotos(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, int, error)
	PhotoURL(photo models.Photo) string
	CreateCategory(ctx context.Context, name string) (models.PhotoCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]models.PhotoCategory, error)
}

type InfoService interface {
	CreateInfo(ctx context.Context, req dto.InfoRequest) (models.KeyValueInformation, error)
	UpdateInfo(ctx context.Context, id uuid.UUID, req dto.UpdateInfoRequest) (models.KeyValueInformation, error)
	DeleteInfo(ctx context.Context, id uuid.UUID) error
	GetInfo(ctx context.Context, id uuid.UUID) (models.KeyValueInformation, error)
	ListInfos(ctx context.Context, filter models.InfoFilter) ([]models.KeyValueInformation, error)
	PublicInfo(ctx context.Context, names []string) (map[string]dto.InfoValue, error)

	CreateGroup(ctx context.Context, name string) (models.ContactsGroup, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, name string) (models.ContactsGroup, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	GetGroup(ctx context.Context, id uuid.UUID) (models.ContactsGroup, error)
	ListGroups(ctx context.Context) ([]models.ContactsGroup, error)

	CreateContact(ctx context.Context, req dto.ContactRequest) (models.Contact, error)
	UpdateContact(ctx context.Context, id uuid.UUID, req dto.UpdateContactRequest) (models.Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
	GetContact(ctx context.Context, id uuid.UUID) (models.Contact, error)
	ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
}

type Routers struct {
	log            *slog.Logger
	cookies        middleware.CookieConfig
	UserService    UserService
	TokenService   TokenService
	HorseService   HorseService
	BreedService   BreedService
	OwnerService   OwnerService
	GalleryService GalleryService
	InfoService    InfoService
}

type Services struct {
	Users   UserService
	Tokens  TokenService
	Horses  HorseService
	Breeds  BreedService
	Owners  OwnerService
	Gallery GalleryService
	Info    InfoService
}

func NewRouter(log *slog.Logger, cookies middleware.CookieConfig, s Services) *Routers {
	return &Routers{
		log:            log,
		cookies:        cookies,
		UserService:    s.Users,
		TokenService:   s.Tokens,
		HorseService:   s.Horses,
		BreedService:   s.Breeds,
		OwnerService:   s.Owners,
		GalleryService: s.Gallery,
		InfoService:    s.Info,
	}
}

var ErrInvalidUUID = errors.New("not valid UUID")

const (
	defaultLimit = 50
	maxLimit     = 100
)

// Health godoc
// @Summary Проверка доступности сервиса
// @Tags system
// @Produce json
// @Success 200 {object} response.Response
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "ok"})
}

// fail переводит ошибку сервиса в HTTP-ответ
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	var (
		edgeErr  *pedigree.EdgeError
		inputErr *horsesvc.InputError
	)

	switch {
	case errors.As(err, &edgeErr):
		return c.JSON(http.StatusBadRequest, response.FieldError(edgeErr.Field, edgeErr.Message))
	case errors.As(err, &inputErr):
		return c.JSON(http.StatusBadRequest, response.FieldError(inputErr.Field, inputErr.Message))
	case errors.Is(err, horsesvc.ErrInvalidMode):
		return c.JSON(http.StatusBadRequest, response.FieldError("mode", horsesvc.ErrInvalidMode.Error()))
	case errors.Is(err, infosvc.ErrInvalidType):
		return c.JSON(http.StatusBadRequest, response.FieldError("as_type", err.Error()))
	case errors.Is(err, gallerysvc.ErrFileRequired):
		return c.JSON(http.StatusBadRequest, response.FieldError("file", gallerysvc.ErrFileRequired.Error()))
	case errors.Is(err, storage.ErrInvalidFileType):
		return c.JSON(http.StatusBadRequest, response.FieldError("file", storage.ErrInvalidFileType.Error()))
	case errors.Is(err, storage.ErrFileTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, response.FieldError("file", storage.ErrFileTooLarge.Error()))
	case errors.Is(err, usersvc.ErrInvalidCredentials),
		errors.Is(err, usersvc.ErrUserInactive),
		errors.Is(err, tokensvc.ErrInvalidToken),
		errors.Is(err, tokensvc.ErrTokenExpired),
		errors.Is(err, tokensvc.ErrTokenNotInStorage),
		errors.Is(err, tokensvc.ErrUserInactive):
		return c.JSON(http.StatusUnauthorized, response.ErrorResponseWithDetails("authentication_failed", rootMessage(err)))
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrUserNotFound),
		errors.Is(err, usersvc.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, usersvc.ErrUserExist):
		return c.JSON(http.StatusConflict, response.ErrUserAlreadyExists)
	case errors.Is(err, storage.ErrExists):
		return c.JSON(http.StatusConflict, response.ErrAlreadyExists)
	}

	log.Error("request failed", sl.Err(err))
	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// rootMessage отбрасывает префиксы op из цепочки обертываний
func rootMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

func (r *Routers) invalidRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(
		response.ErrInvalidRequestFormat.Error, err.Error(),
	))
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}
	return id, nil
}

func (r *Routers) invalidID(c echo.Context, field string) error {
	return c.JSON(http.StatusBadRequest, response.FieldError(field, ErrInvalidUUID.Error()))
}

// queryList собирает значения параметра, переданного как name или name[]
func queryList(c echo.Context, name string) []string {
	params := c.QueryParams()
	out := make([]string, 0, len(params[name])+len(params[name+"[]"]))
	for _, key := range []string{name, name + "[]"} {
		for _, v := range params[key] {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
	}
	return out
}

func queryUUIDs(c echo.Context, name string) ([]uuid.UUID, error) {
	raw := queryList(c, name)
	out := make([]uuid.UUID, 0, len(raw))
	for _, v := range raw {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, ErrInvalidUUID
		}
		out = append(out, id)
	}
	return out, nil
}

func queryUUID(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrInvalidUUID
	}
	return &id, nil
}

func queryDate(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	return dto.ParseDate(&raw)
}

// pagination читает limit (1..100, по умолчанию 50) и offset (>= 0)
func pagination(c echo.Context) (limit, offset int, field string, err error) {
	limit = defaultLimit
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			return 0, 0, "limit", errors.New("limit must be an integer between 1 and 100")
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, "offset", errors.New("offset must be a non-negative integer")
		}
	}
	return limit, offset, "", nil
}

func (r *Routers) photoResponse(p models.Photo, moderator bool) dto.PhotoResponse {
	out := dto.PhotoResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       r.GalleryService.PhotoURL(p),
		CategoryIDs: p.CategoryIDs,
	}
	if out.CategoryIDs == nil {
		out.CategoryIDs = []uuid.UUID{}
	}
	if moderator {
		createdAt := p.CreatedAt
		out.CreatedAt = &createdAt
		out.CreatedBy = p.CreatedBy
	}
	return out
}
