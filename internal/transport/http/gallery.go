package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"equestrian/internal/domain/models"
	"equestrian/internal/middleware"
	"equestrian/internal/transport/http/dto"
	"equestrian/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ListPhotos godoc
// @Summary Фотографии галереи
// @Description Фильтры created_from, created_to и created_by[] учитываются только для модераторов
// @Tags gallery
// @Produce json
// @Param title query string false "Часть заголовка"
// @Param description query string false "Часть описания"
// @Param category_id[] query []string false "Категории"
// @Param created_from query string false "Загружены не раньше (YYYY-MM-DD)"
// @Param created_to query string false "Загружены не позже (YYYY-MM-DD)"
// @Param created_by[] query []string false "Кем загружены"
// @Param limit query int false "1..100, по умолчанию 50"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response{data=dto.ListResponse[dto.PhotoResponse]}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/photos [get]
func (r *Routers) ListPhotos(c echo.Context) error {
	const op = "http.routers.ListPhotos"

	log := r.log.With(
		slog.String("op", op),
	)

	moderator := middleware.CanModerate(c)

	filter, field, err := photoFilter(c, moderator)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.FieldError(field, err.Error()))
	}

	photos, total, err := r.GalleryService.ListPhotos(c.Request().Context(), filter)
	if err != nil {
		return r.fail(c, log, err)
	}

	out := dto.ListResponse[dto.PhotoResponse]{Count: total, Items: make([]dto.PhotoResponse, 0, len(photos))}
	for _, p := range photos {
		out.Items = append(out.Items, r.photoResponse(p, moderator))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(out))
}

func photoFilter(c echo.Context, moderator bool) (models.PhotoFilter, string, error) {
	var (
		filter models.PhotoFilter
		field  string
		err    error
	)

	filter.Title = c.QueryParam("title")
	filter.Description = c.QueryParam("description")

	if filter.CategoryIDs, err = queryUUIDs(c, "category_id"); err != nil {
		return filter, "category_id", err
	}

	if moderator {
		if filter.CreatedFrom, err = queryDate(c, "created_from"); err != nil {
			return filter, "created_from", err
		}
		if filter.CreatedTo, err = queryDate(c, "created_to"); err != nil {
			return filter, "created_to", err
		}
		if filter.CreatedTo != nil {
			end := filter.CreatedTo.AddDate(0, 0, 1)
			filter.CreatedTo = &end
		}
		if filter.CreatedBy, err = queryUUIDs(c, "created_by"); err != nil {
			return filter, "created_by", err
		}
	}

	filter.Limit, filter.Offset, field, err = pagination(c)
	if err != nil {
		return filter, field, err
	}

	return filter, "", nil
}

// UploadPhoto godoc
// @Summary Загрузка фотографии
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Изображение (jpeg, png, gif, webp)"
// @Param title formData string true "Заголовок"
// @Param description formData string false "Описание"
// @Param category_id[] formData []string false "Категории"
// @Success 201 {object} response.Response{data=dto.PhotoResponse}
// @Failure 400 {object} response.ErrorResponse "Неверный файл или данные"
// @Failure 413 {object} response.ErrorResponse "Файл слишком большой"
// @Router /api/v1/photos [post]
func (r *Routers) UploadPhoto(c echo.Context) error {
	const op = "http.routers.UploadPhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreatePhotoRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	categories, err := formUUIDs(c, "category_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.FieldError("category_id", err.Error()))
	}
	req.CategoryIDs = categories

	identity, _ := middleware.IdentityFrom(c)
	req.CreatedBy = &identity.UserID

	var file *multipart.FileHeader
	file, err = c.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return c.JSON(http.StatusBadRequest, response.FieldError("file", err.Error()))
	}

	photo, err := r.GalleryService.UploadPhoto(c.Request().Context(), file, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(r.photoResponse(photo, true)))
}

func formUUIDs(c echo.Context, name string) ([]uuid.UUID, error) {
	form, err := c.FormParams()
	if err != nil {
		return nil, err
	}

	var out []uuid.UUID
	for _, key := range []string{name, name + "[]"} {
		for _, v := range form[key] {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part == "" {
					continue
				}
				id, err := uuid.Parse(part)
				if err != nil {
					return nil, ErrInvalidUUID
				}
				out = append(out, id)
			}
		}
	}
	return out, nil
}

// GetPhoto godoc
// @Summary Получение фотографии
// @Tags gallery
// @Produce json
// @Param id path string true "ID фотографии"
// @Success 200 {object} response.Response{data=dto.PhotoResponse}
// @Failure 404 {object} response.ErrorResponse "Фотография не найдена"
// @Router /api/v1/photos/{id} [get]
func (r *Routers) GetPhoto(c echo.Context) error {
	const op = "http.routers.GetPhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	photo, err := r.GalleryService.GetPhoto(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(r.photoResponse(photo, middleware.CanModerate(c))))
}

// UpdatePhoto godoc
// @Summary Изменение подписи и категорий фотографии
// @Tags gallery
// @Accept json
// @Produce json
// @Param id path string true "ID фотографии"
// @Param request body dto.UpdatePhotoRequest true "Изменяемые поля"
// @Success 200 {object} response.Response{data=dto.PhotoResponse}
// @Failure 404 {object} response.ErrorResponse "Фотография не найдена"
// @Router /api/v1/photos/{id} [patch]
func (r *Routers) UpdatePhoto(c echo.Context) error {
	const op = "http.routers.UpdatePhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	var req dto.UpdatePhotoRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	photo, err := r.GalleryService.UpdatePhoto(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(r.photoResponse(photo, true)))
}

// DeletePhoto godoc
// @Summary Удаление фотографии
// @Description Удаляет запись и файл изображения
// @Tags gallery
// @Param id path string true "ID фотографии"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "Фотография не найдена"
// @Router /api/v1/photos/{id} [delete]
func (r *Routers) DeletePhoto(c echo.Context) error {
	const op = "http.routers.DeletePhoto"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	if err := r.GalleryService.DeletePhoto(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListPhotoCategories godoc
// @Summary Категории фотографий
// @Tags gallery
// @Produce json
// @Success 200 {object} response.Response{data=[]models.PhotoCategory}
// @Router /api/v1/photos/categories [get]
func (r *Routers) ListPhotoCategories(c echo.Context) error {
	const op = "http.routers.ListPhotoCategories"

	log := r.log.With(
		slog.String("op", op),
	)

	categories, err := r.GalleryService.ListCategories(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(categories))
}

// CreatePhotoCategory godoc
// @Summary Создание категории
// @Tags gallery
// @Accept json
// @Produce json
// @Param request body dto.PhotoCategoryRequest true "Категория"
// @Success 201 {object} response.Response{data=models.PhotoCategory}
// @Failure 409 {object} response.ErrorResponse "Категория уже существует"
// @Router /api/v1/photos/categories [post]
func (r *Routers) CreatePhotoCategory(c echo.Context) error {
	const op = "http.routers.CreatePhotoCategory"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.PhotoCategoryRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	category, err := r.GalleryService.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(category))
}

// DeletePhotoCategory godoc
// @Summary Удаление категории
// @Tags gallery
// @Param id path string true "ID категории"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "Категория не найдена"
// @Router /api/v1/photos/categories/{id} [delete]
func (r *Routers) DeletePhotoCategory(c echo.Context) error {
	const op = "http.routers.DeletePhotoCategory"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	if err := r.GalleryService.DeleteCategory(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}
