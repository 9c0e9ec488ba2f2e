package http

import (
	"log/slog"
	"net/http"

	"equestrian/internal/domain/models"
	"equestrian/internal/middleware"
	"equestrian/internal/transport/http/dto"
	"equestrian/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListInfo godoc
// @Summary Справочная информация
// @Description Публично возвращает словарь name -> {value, type}. С admin=true администратор получает полные записи.
// @Tags info
// @Produce json
// @Param name[] query []string false "Ключи (публичный режим)"
// @Param admin query bool false "Полный список для администратора"
// @Param name query string false "Часть ключа (admin)"
// @Param title query string false "Часть заголовка (admin)"
// @Param as_type[] query []string false "Типы значений (admin)"
// @Success 200 {object} response.Response{data=map[string]dto.InfoValue}
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /api/v1/info [get]
func (r *Routers) ListInfo(c echo.Context) error {
	const op = "http.routers.ListInfo"

	log := r.log.With(
		slog.String("op", op),
	)

	ctx := c.Request().Context()

	if c.QueryParam("admin") != "true" {
		info, err := r.InfoService.PublicInfo(ctx, queryList(c, "name"))
		if err != nil {
			return r.fail(c, log, err)
		}
		return c.JSON(http.StatusOK, response.SuccessResponse(info))
	}

	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}
	if identity.Role != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, response.ErrForbidden)
	}

	infos, err := r.InfoService.ListInfos(ctx, models.InfoFilter{
		Name:  c.QueryParam("name"),
		Title: c.QueryParam("title"),
		Types: queryList(c, "as_type"),
	})
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(infos))
}

// CreateInfo godoc
// @Summary Создание записи справочной информации
// @Tags info
// @Accept json
// @Produce json
// @Param request body dto.InfoRequest true "Запись"
// @Success 201 {object} response.Response{data=models.KeyValueInformation}
// @Failure 409 {object} response.ErrorResponse "Ключ уже существует"
// @Router /api/v1/info [post]
func (r *Routers) CreateInfo(c echo.Context) error {
	const op = "http.routers.CreateInfo"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.InfoRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	info, err := r.InfoService.CreateInfo(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(info))
}

// GetInfo godoc
// @Summary Получение записи справочной информации
// @Tags info
// @Produce json
// @Param id path string true "ID записи"
// @Success 200 {object} response.Response{data=models.KeyValueInformation}
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Router /api/v1/info/{id} [get]
func (r *Routers) GetInfo(c echo.Context) error {
	const op = "http.routers.GetInfo"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	info, err := r.InfoService.GetInfo(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(info))
}

// UpdateInfo godoc
// @Summary Изменение записи справочной информации
// @Tags info
// @Accept json
// @Produce json
// @Param id path string true "ID записи"
// @Param request body dto.UpdateInfoRequest true "Изменяемые поля"
// @Success 200 {object} response.Response{data=models.KeyValueInformation}
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Router /api/v1/info/{id} [patch]
func (r *Routers) UpdateInfo(c echo.Context) error {
	const op = "http.routers.UpdateInfo"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	var req dto.UpdateInfoRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	info, err := r.InfoService.UpdateInfo(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(info))
}

// DeleteInfo godoc
// @Summary Удаление записи справочной информации
// @Tags info
// @Param id path string true "ID записи"
// @Success 204
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Router /api/v1/info/{id} [delete]
func (r *Routers) DeleteInfo(c echo.Context) error {
	const op = "http.routers.DeleteInfo"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	if err := r.InfoService.DeleteInfo(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListContacts godoc
// @Summary Контакты
// @Description Сортировка: группа, приоритет, заголовок
// @Tags contacts
// @Produce json
// @Param main_title query string false "Часть заголовка"
// @Param subtitle query string false "Часть подзаголовка"
// @Param group[] query []string false "Группы"
// @Success 200 {object} response.Response{data=[]models.Contact}
// @Router /api/v1/contacts [get]
func (r *Routers) ListContacts(c echo.Context) error {
	const op = "http.routers.ListContacts"

	log := r.log.With(
		slog.String("op", op),
	)

	groups, err := queryUUIDs(c, "group")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.FieldError("group", err.Error()))
	}

	contacts, err := r.InfoService.ListContacts(c.Request().Context(), models.ContactFilter{
		MainTitle: c.QueryParam("main_title"),
		Subtitle:  c.QueryParam("subtitle"),
		GroupIDs:  groups,
	})
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(contacts))
}

// CreateContact godoc
// @Summary Создание контакта
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Контакт"
// @Success 201 {object} response.Response{data=models.Contact}
// @Failure 404 {object} response.ErrorResponse "Группа не найдена"
// @Router /api/v1/contacts [post]
func (r *Routers) CreateContact(c echo.Context) error {
	const op = "http.routers.CreateContact"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.ContactRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	contact, err := r.InfoService.CreateContact(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(contact))
}

// GetContact godoc
// @Summary Получение контакта
// @Tags contacts
// @Produce json
// @Param id path string true "ID контакта"
// @Success 200 {object} response.Response{data=models.Contact}
// @Failure 404 {object} response.ErrorResponse "Контакт не найден"
// @Router /api/v1/contacts/{id} [get]
func (r *Routers) GetContact(c echo.Context) error {
	const op = "http.routers.GetContact"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	contact, err := r.InfoService.GetContact(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(contact))
}

// UpdateContact godoc
// @Summary Изменение контакта
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "ID контакта"
// @Param request body dto.UpdateContactRequest true "Изменяемые поля"
// @Success 200 {object} response.Response{data=models.Contact}
// @Failure 404 {object} response.ErrorResponse "Контакт не найден"
// @Router /api/v1/contacts/{id} [patch]
func (r *Routers) UpdateContact(c echo.Context) error {
	const op = "http.routers.UpdateContact"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	var req dto.UpdateContactRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	contact, err := r.InfoService.UpdateContact(c.Request().Context(), id, req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(contact))
}

// DeleteContact godoc
// @Summary Удаление контакта
// @Tags contacts
// @Param id path string true "ID контакта"
// @Success 204
// @Router /api/v1/contacts/{id} [delete]
func (r *Routers) DeleteContact(c echo.Context) error {
	const op = "http.routers.DeleteContact"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	if err := r.InfoService.DeleteContact(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListContactGroups godoc
// @Summary Группы контактов
// @Tags contacts
// @Produce json
// @Success 200 {object} response.Response{data=[]models.ContactsGroup}
// @Router /api/v1/contacts/groups [get]
func (r *Routers) ListContactGroups(c echo.Context) error {
	const op = "http.routers.ListContactGroups"

	log := r.log.With(
		slog.String("op", op),
	)

	groups, err := r.InfoService.ListGroups(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(groups))
}

// CreateContactGroup godoc
// @Summary Создание группы контактов
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body dto.ContactsGroupRequest true "Группа"
// @Success 201 {object} response.Response{data=models.ContactsGroup}
// @Failure 409 {object} response.ErrorResponse "Группа уже существует"
// @Router /api/v1/contacts/groups [post]
func (r *Routers) CreateContactGroup(c echo.Context) error {
	const op = "http.routers.CreateContactGroup"

	log := r.log.With(
		slog.String("op", op),
	)

	var req dto.ContactsGroupRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	group, err := r.InfoService.CreateGroup(c.Request().Context(), req.Name)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(group))
}

// GetContactGroup godoc
// @Summary Получение группы контактов
// @Tags contacts
// @Produce json
// @Param id path string true "ID группы"
// @Success 200 {object} response.Response{data=models.ContactsGroup}
// @Failure 404 {object} response.ErrorResponse "Группа не найдена"
// @Router /api/v1/contacts/groups/{id} [get]
func (r *Routers) GetContactGroup(c echo.Context) error {
	const op = "http.routers.GetContactGroup"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	group, err := r.InfoService.GetGroup(c.Request().Context(), id)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(group))
}

// UpdateContactGroup godoc
// @Summary Переименование группы контактов
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "ID группы"
// @Param request body dto.ContactsGroupRequest true "Группа"
// @Success 200 {object} response.Response{data=models.ContactsGroup}
// @Failure 404 {object} response.ErrorResponse "Группа не найдена"
// @Router /api/v1/contacts/groups/{id} [patch]
func (r *Routers) UpdateContactGroup(c echo.Context) error {
	const op = "http.routers.UpdateContactGroup"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	var req dto.ContactsGroupRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return r.invalidRequest(c, err)
	}

	group, err := r.InfoService.UpdateGroup(c.Request().Context(), id, req.Name)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(group))
}

// DeleteContactGroup godoc
// @Summary Удаление группы контактов
// @Description Контакты группы удаляются вместе с ней
// @Tags contacts
// @Param id path string true "ID группы"
// @Success 204
// @Router /api/v1/contacts/groups/{id} [delete]
func (r *Routers) DeleteContactGroup(c echo.Context) error {
	const op = "http.routers.DeleteContactGroup"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := pathUUID(c, "id")
	if err != nil {
		return r.invalidID(c, "id")
	}

	if err := r.InfoService.DeleteGroup(c.Request().Context(), id); err != nil {
		return r.fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}
