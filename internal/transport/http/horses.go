package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/middleware"
	horsesvc "equestrian/internal/services/horse_service"
	"equestrian/internal/transport/http/dto"
	"equestrian/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ListHorses godoc
// @Summary Список лошадей
// @Tags horses
// @Produce json
// @Param name query string false "Часть клички"
// @Param sex[] query []int false "Пол: 0 кобыла, 1 жеребец, 2 мерин"
// @Param kind query int false "0 лошадь, 1 пони"
// @Param breed_id query string false "ID породы"
// @Param owner_id query string false "ID владельца"
// @Param bdate_from query string false "Родились не раньше (YYYY-MM-DD)"
// @Param bdate_to query string false "Родились не позже (YYYY-MM-DD)"
// @Param limit query int false "1..100, по умолчанию 50"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response{data=dto.ListResponse[dto.HorseResponse]}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/v1/horses [get]
func (r *Routers) ListHorses(c echo.Context) error {
	const op = "http.routers.ListHorses"

	log := r.log.With(
		slog.String("op", op),
	)

	filter, field, err := horseFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.FieldError(field, err.Error()))
	}

	items, total, err := r.HorseService.ListHorses(c.Request().Context(), filter)
	if err != nil {
		return r.fail(c, log, err)
	}

	moderator := middleware.CanModerate(c)
	out := dto.ListResponse[dto.HorseResponse]{Count: total, Items: make([]dto.HorseResponse, 0, len(items))}
	for _, d := range items {
		out.Items = append(out.Items, r.horseResponse(d, moderator))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(out))
}

func horseFilter(c echo.Context) (models.HorseFilter, string, error) {
	var (
		filter models.HorseFilter
		err    error
	)

	filter.Name = c.QueryParam("name")

	for _, raw := range queryList(c, "sex") {
		n, err := strconv.Atoi(raw)
		if err != nil || !models.Sex(n).Valid() {
			return filter, "sex", fmt.Errorf("invalid sex %q", raw)
		}
		filter.Sexes = append(filter.Sexes, models.Sex(n))
	}

	if raw := c.QueryParam("kind"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || (models.Kind(n) != models.KindHorse && models.Kind(n) != models.KindPony) {
			return filter, "kind", fmt.Errorf("invalid kind %q", raw)
		}
		kind := models.Kind(n)
		filter.Kind = &kind
	}

	if filter.BreedID, err = queryUUID(c, "breed_id"); err != nil {
		return filter, "breed_id", err
	}
	if filter.OwnerID, err = queryUUID(c, "owner_id"); err != nil {
		return filter, "owner_id", err
	}
	if filter.BornFrom, err = queryDate(c, "bdate_from"); err != nil {
		return filter, "bdate_from", err
	}
	if filter.BornTo, err = queryDate(c, "bdate_to"); err != nil {
		return filter, "bdate_to", err
	}

	var field string
	filter.Limit, filter.Offset, field, err = pagination(c)
	if err != nil {
		return filter, field, err
	}

	return filter, "", nil
}

// CreateHorse godoc
// @Summary Создание лошади
// @Tags horses
// @Accept json
// @Produce json
// @Param request body dto.CreateHorseRequest true "Данные лошади"
// @Success 201 {object} response.Response{data=dto.HorseResponse}
// @Failure 400 {object} response.ErrorResponse "Ошибка проверки данных"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /api/v1/horses [post]
func (r *Routers) CreateHorse(c echo.Context) error {
	const op = "http.routers.CreateHorse"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.CreateHorseRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	identity, _ := middleware.IdentityFrom(c)
	ctx := c.Request().Context()

	id, err := r.HorseService.CreateHorse(ctx, req, &identity.UserID)
	if err != nil {
		return r.fail(c, log, err)
	}

	details, err := r.HorseService.GetHorse(ctx, id, "")
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(r.horseResponse(details, true)))
}

// GetHorse godoc
// @Summary Получение лошади
// @Description С параметром pedigree (глубина 1..5, значения вне диапазона ограничиваются) в ответ добавляются родословная и дети.
// @Tags horses
// @Produce json
// @Param id path string true "ID лошади"
// @Param pedigree query int false "Глубина родословной"
// @Success 200 {object} response.Response{data=dto.HorseResponse}
// @Failure 404 {object} response.ErrorResponse "Лошадь не найдена"
// @Router /api/v1/horses/{id} [get]
func (r *Routers) GetHorse(c echo.Context) error {
	const op = "http.routers.GetHorse"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	details, err := r.HorseService.GetHorse(c.Request().Context(), id, c.QueryParam("pedigree"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(r.horseResponse(details, middleware.CanModerate(c))))
}

// UpdateHorse godoc
// @Summary Изменение лошади
// @Description Частичное обновление. photo_action: add, replace (по умолчанию) или remove.
// @Tags horses
// @Accept json
// @Produce json
// @Param id path string true "ID лошади"
// @Param request body dto.UpdateHorseRequest true "Изменяемые поля"
// @Success 200 {object} response.Response{data=dto.HorseResponse}
// @Failure 400 {object} response.ErrorResponse "Ошибка проверки данных"
// @Failure 404 {object} response.ErrorResponse "Лошадь не найдена"
// @Router /api/v1/horses/{id} [patch]
func (r *Routers) UpdateHorse(c echo.Context) error {
	const op = "http.routers.UpdateHorse"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	var req dto.UpdateHorseRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	ctx := c.Request().Context()

	if err := r.HorseService.UpdateHorse(ctx, id, req); err != nil {
		return r.fail(c, log, err)
	}

	details, err := r.HorseService.GetHorse(ctx, id, "")
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(r.horseResponse(details, true)))
}

// DeleteHorse godoc
// @Summary Удаление лошади
// @Description Связи с родителями и детьми удаляются вместе с лошадью
// @Tags horses
// @Param id path string true "ID лошади"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "Лошадь не найдена"
// @Router /api/v1/horses/{id} [delete]
func (r *Routers) DeleteHorse(c echo.Context) error {
	const op = "http.routers.DeleteHorse"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	if err := r.HorseService.DeleteHorse(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// PedigreeCandidates godoc
// @Summary Кандидаты для родословной
// @Description dam и sire: лошади подходящего пола, родившиеся не позже года рождения; children: родившиеся в годы жизни лошади.
// @Tags pedigree
// @Produce json
// @Param id path string true "ID лошади"
// @Param mode path string true "dam, sire или children (mother, father)"
// @Success 200 {object} response.Response{data=[]map[string]interface{}}
// @Failure 400 {object} response.ErrorResponse "Неизвестный режим"
// @Failure 404 {object} response.ErrorResponse "Лошадь не найдена"
// @Router /api/v1/horses/{id}/pedigree/{mode} [get]
func (r *Routers) PedigreeCandidates(c echo.Context) error {
	const op = "http.routers.PedigreeCandidates"

	log := r.log.With(
		slog.String("op", op),
	)

	id, mode, field, err := pedigreeParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.FieldError(field, err.Error()))
	}

	candidates, err := r.HorseService.Candidates(c.Request().Context(), id, mode)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(candidates))
}

// AttachPedigree godoc
// @Summary Привязка родителей или детей
// @Description Для dam и sire ped_horses содержит ровно один ID. Дети привязываются все или ни одного.
// @Tags pedigree
// @Accept json
// @Produce json
// @Param id path string true "ID лошади"
// @Param mode path string true "dam, sire или children"
// @Param request body dto.PedigreeRequest true "Лошади"
// @Success 200 {object} response.Response{data=dto.HorseResponse}
// @Failure 400 {object} response.ErrorResponse "Связь недопустима"
// @Failure 404 {object} response.ErrorResponse "Лошадь не найдена"
// @Router /api/v1/horses/{id}/pedigree/{mode} [post]
func (r *Routers) AttachPedigree(c echo.Context) error {
	return r.changePedigree(c, "http.routers.AttachPedigree", r.HorseService.AttachPedigree)
}

// DetachPedigree godoc
// @Summary Отвязка родителей или детей
// @Description Для dam и sire тело не требуется, для children перечисляются отвязываемые дети.
// @Tags pedigree
// @Accept json
// @Produce json
// @Param id path string true "ID лошади"
// @Param mode path string true "dam, sire или children"
// @Param request body dto.PedigreeRequest false "Дети"
// @Success 200 {object} response.Response{data=dto.HorseResponse}
// @Failure 400 {object} response.ErrorResponse "Связи нет"
// @Failure 404 {object} response.ErrorResponse "Лошадь не найдена"
// @Router /api/v1/horses/{id}/pedigree/{mode} [delete]
func (r *Routers) DetachPedigree(c echo.Context) error {
	return r.changePedigree(c, "http.routers.DetachPedigree", r.HorseService.DetachPedigree)
}

type pedigreeChange func(ctx context.Context, id uuid.UUID, mode horsesvc.Mode, pedHorses []uuid.UUID) error

func (r *Routers) changePedigree(c echo.Context, op string, change pedigreeChange) error {
	log := r.log.With(
		slog.String("op", op),
	)

	id, mode, field, err := pedigreeParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.FieldError(field, err.Error()))
	}

	var req dto.PedigreeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	ctx := c.Request().Context()

	if err := change(ctx, id, mode, req.PedHorses); err != nil {
		return r.fail(c, log, err)
	}

	details, err := r.HorseService.GetHorse(ctx, id, "")
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(r.horseResponse(details, true)))
}

func pedigreeParams(c echo.Context) (uuid.UUID, horsesvc.Mode, string, error) {
	id, err := pathUUID(c, "id")
	if err != nil {
		return uuid.Nil, "", "id", err
	}
	mode, err := horsesvc.ParseMode(c.Param("mode"))
	if err != nil {
		return uuid.Nil, "", "mode", err
	}
	return id, mode, "", nil
}

func (r *Routers) horseResponse(d horsesvc.HorseDetails, moderator bool) dto.HorseResponse {
	h := d.Horse

	out := dto.HorseResponse{
		ID:             h.ID,
		Name:           h.Name,
		Sex:            int16(h.Sex),
		Kind:           int16(h.Kind),
		Breed:          d.Breed,
		Owner:          d.Owner,
		BDateFormatted: h.Birth().Format(),
		DDateFormatted: h.Death().Format(),
		Age:            h.Age(time.Now()),
		Description:    h.Description,
		Photos:         make([]dto.PhotoResponse, 0, len(d.Photos)),
		Pedigree:       d.Pedigree,
		Children:       d.Children,
	}

	for _, p := range d.Photos {
		out.Photos = append(out.Photos, r.photoResponse(p, moderator))
	}

	if moderator {
		bmode, dmode := int16(h.BirthMode), int16(h.DeathMode)
		createdAt := h.CreatedAt
		out.BirthDate = dto.FormatDate(h.BirthDate)
		out.BirthMode = &bmode
		out.DeathDate = dto.FormatDate(h.DeathDate)
		out.DeathMode = &dmode
		out.CreatedAt = &createdAt
		out.CreatedBy = h.CreatedBy
	}

	return out
}
