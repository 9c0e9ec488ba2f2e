package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"equestrian/internal/domain/models"
	"equestrian/internal/transport/http/dto"
	"equestrian/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListBreeds godoc
// @Summary Список пород
// @Tags breeds
// @Produce json
// @Param name query string false "Часть названия"
// @Success 200 {object} response.Response{data=[]models.Breed}
// @Router /api/v1/breeds [get]
func (r *Routers) ListBreeds(c echo.Context) error {
	const op = "http.routers.ListBreeds"

	log := r.log.With(
		slog.String("op", op),
	)

	breeds, err := r.BreedService.ListBreeds(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(breeds))
}

// CreateBreed godoc
// @Summary Создание породы
// @Tags breeds
// @Accept json
// @Produce json
// @Param request body dto.BreedRequest true "Порода"
// @Success 201 {object} response.Response{data=models.Breed}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} response.ErrorResponse "Порода уже существует"
// @Router /api/v1/breeds [post]
func (r *Routers) CreateBreed(c echo.Context) error {
	const op = "http.routers.CreateBreed"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.BreedRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	breed, err := r.BreedService.CreateBreed(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(breed))
}

// GetBreed godoc
// @Summary Получение породы
// @Tags breeds
// @Produce json
// @Param id path string true "ID породы"
// @Success 200 {object} response.Response{data=models.Breed}
// @Failure 404 {object} response.ErrorResponse "Порода не найдена"
// @Router /api/v1/breeds/{id} [get]
func (r *Routers) GetBreed(c echo.Context) error {
	const op = "http.routers.GetBreed"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	breed, err := r.BreedService.GetBreed(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(breed))
}

// UpdateBreed godoc
// @Summary Изменение породы
// @Tags breeds
// @Accept json
// @Produce json
// @Param id path string true "ID породы"
// @Param request body dto.UpdateBreedRequest true "Изменяемые поля"
// @Success 200 {object} response.Response{data=models.Breed}
// @Failure 404 {object} response.ErrorResponse "Порода не найдена"
// @Failure 409 {object} response.ErrorResponse "Название занято"
// @Router /api/v1/breeds/{id} [patch]
func (r *Routers) UpdateBreed(c echo.Context) error {
	const op = "http.routers.UpdateBreed"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	var req dto.UpdateBreedRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	breed, err := r.BreedService.UpdateBreed(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(breed))
}

// DeleteBreed godoc
// @Summary Удаление породы
// @Description У лошадей этой породы порода сбрасывается
// @Tags breeds
// @Param id path string true "ID породы"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "Порода не найдена"
// @Router /api/v1/breeds/{id} [delete]
func (r *Routers) DeleteBreed(c echo.Context) error {
	const op = "http.routers.DeleteBreed"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	if err := r.BreedService.DeleteBreed(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListOwners godoc
// @Summary Список владельцев
// @Tags owners
// @Produce json
// @Param name query string false "Часть имени"
// @Param type[] query []int false "0 юр. лицо, 1 физ. лицо, 2 неизвестно"
// @Success 200 {object} response.Response{data=[]models.HorseOwner}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/owners [get]
func (r *Routers) ListOwners(c echo.Context) error {
	const op = "http.routers.ListOwners"

	log := r.log.With(
		slog.String("op", op),
	)

	var types []models.OwnerType
	for _, raw := range queryList(c, "type") {
		n, err := strconv.Atoi(raw)
		if err != nil || n < int(models.OwnerLegalEntity) || n > int(models.OwnerUnknown) {
			return c.JSON(http.StatusBadRequest, response.FieldError("type", fmt.Sprintf("invalid owner type %q", raw)))
		}
		types = append(types, models.OwnerType(n))
	}

	owners, err := r.OwnerService.ListOwners(c.Request().Context(), c.QueryParam("name"), types)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(owners))
}

// CreateOwner godoc
// @Summary Создание владельца
// @Tags owners
// @Accept json
// @Produce json
// @Param request body dto.OwnerRequest true "Владелец"
// @Success 201 {object} response.Response{data=models.HorseOwner}
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Router /api/v1/owners [post]
func (r *Routers) CreateOwner(c echo.Context) error {
	const op = "http.routers.CreateOwner"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.OwnerRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	owner, err := r.OwnerService.CreateOwner(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(owner))
}

// GetOwner godoc
// @Summary Получение владельца
// @Tags owners
// @Produce json
// @Param id path string true "ID владельца"
// @Success 200 {object} response.Response{data=models.HorseOwner}
// @Failure 404 {object} response.ErrorResponse "Владелец не найден"
// @Router /api/v1/owners/{id} [get]
func (r *Routers) GetOwner(c echo.Context) error {
	const op = "http.routers.GetOwner"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	owner, err := r.OwnerService.GetOwner(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(owner))
}

// UpdateOwner godoc
// @Summary Изменение владельца
// @Tags owners
// @Accept json
// @Produce json
// @Param id path string true "ID владельца"
// @Param request body dto.UpdateOwnerRequest true "Изменяемые поля"
// @Success 200 {object} response.Response{data=models.HorseOwner}
// @Failure 404 {object} response.ErrorResponse "Владелец не найден"
// @Router /api/v1/owners/{id} [patch]
func (r *Routers) UpdateOwner(c echo.Context) error {
	const op = "http.routers.UpdateOwner"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	var req dto.UpdateOwnerRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	owner, err := r.OwnerService.UpdateOwner(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(owner))
}

// DeleteOwner godoc
// @Summary Удаление владельца
// @Tags owners
// @Param id path string true "ID владельца"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "Владелец не найден"
// @Router /api/v1/owners/{id} [delete]
func (r *Routers) DeleteOwner(c echo.Context) error {
	const op = "http.routers.DeleteOwner"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	if err := r.OwnerService.DeleteOwner(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}
