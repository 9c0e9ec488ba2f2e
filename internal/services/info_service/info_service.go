package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"equestrian/internal/domain/models"
	"equestrian/internal/lib/logger/sl"
	"equestrian/internal/repository"
	"equestrian/internal/transport/http/dto"

	"github.com/google/uuid"
)

var ErrInvalidType = errors.New("invalid information type")

// InfoService справочная информация сайта и контакты клуба
type InfoService struct {
	log      *slog.Logger
	infos    repository.InfoRepository
	contacts repository.ContactRepository
}

func NewInfoService(log *slog.Logger, infos repository.InfoRepository, contacts repository.ContactRepository) *InfoService {
	return &InfoService{
		log:      log,
		infos:    infos,
		contacts: contacts,
	}
}

// NormalizeTypes приводит типы к нижнему регистру и отклоняет неизвестные
func NormalizeTypes(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := models.InfoTypes[t]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidType, t)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *InfoService) CreateInfo(ctx context.Context, req dto.InfoRequest) (models.KeyValueInformation, error) {
	const op = "services.InfoService.CreateInfo"

	log := s.log.With(
		slog.String("op", op),
		slog.String("name", req.Name),
	)

	info := req.ToDomain()
	types, err := NormalizeTypes([]string{info.AsType})
	if err != nil || len(types) == 0 {
		return models.KeyValueInformation{}, fmt.Errorf("%s: %w", op, ErrInvalidType)
	}
	info.AsType = types[0]

	id, err := s.infos.CreateInfo(ctx, info)
	if err != nil {
		log.Error("failed to create information", sl.Err(err))

		return models.KeyValueInformation{}, fmt.Errorf("%s: %w", op, err)
	}
	info.ID = id

	log.Info("information created")

	return info, nil
}

func (s *InfoService) UpdateInfo(ctx context.Context, id uuid.UUID, req dto.UpdateInfoRequest) (models.KeyValueInformation, error) {
	const op = "services.InfoService.UpdateInfo"

	info, err := s.infos.GetInfoByID(ctx, id)
	if err != nil {
		return models.KeyValueInformation{}, fmt.Errorf("%s: %w", op, err)
	}

	info = req.Apply(info)
	types, err := NormalizeTypes([]string{info.AsType})
	if err != nil || len(types) == 0 {
		return models.KeyValueInformation{}, fmt.Errorf("%s: %w", op, ErrInvalidType)
	}
	info.AsType = types[0]

	if err := s.infos.UpdateInfo(ctx, info); err != nil {
		return models.KeyValueInformation{}, fmt.Errorf("%s: %w", op, err)
	}

	return info, nil
}

func (s *InfoService) DeleteInfo(ctx context.Context, id uuid.UUID) error {
	const op = "services.InfoService.DeleteInfo"

	if err := s.infos.DeleteInfo(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *InfoService) GetInfo(ctx context.Context, id uuid.UUID) (models.KeyValueInformation, error) {
	const op = "services.InfoService.GetInfo"

	info, err := s.infos.GetInfoByID(ctx, id)
	if err != nil {
		return models.KeyValueInformation{}, fmt.Errorf("%s: %w", op, err)
	}
	return info, nil
}

// ListInfos полный список для администраторов
func (s *InfoService) ListInfos(ctx context.Context, filter models.InfoFilter) ([]models.KeyValueInformation, error) {
	const op = "services.InfoService.ListInfos"

	types, err := NormalizeTypes(filter.Types)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	filter.Types = types

	infos, err := s.infos.GetInfos(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return infos, nil
}

// PublicInfo возвращает словарь name -> {value, type}, при непустом names только для этих ключей
func (s *InfoService) PublicInfo(ctx context.Context, names []string) (map[string]dto.InfoValue, error) {
	const op = "services.InfoService.PublicInfo"

	infos, err := s.infos.GetInfos(ctx, models.InfoFilter{Names: names})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make(map[string]dto.InfoValue, len(infos))
	for _, i := range infos {
		out[i.Name] = dto.InfoValue{Value: i.Value, Type: i.AsType}
	}
	return out, nil
}

func (s *InfoService) CreateGroup(ctx context.Context, name string) (models.ContactsGroup, error) {
	const op = "services.InfoService.CreateGroup"

	group := models.ContactsGroup{Name: strings.TrimSpace(name)}

	id, err := s.contacts.CreateGroup(ctx, group)
	if err != nil {
		return models.ContactsGroup{}, fmt.Errorf("%s: %w", op, err)
	}
	group.ID = id

	s.log.Info("contacts group created", slog.String("op", op), slog.String("name", group.Name))

	return group, nil
}

func (s *InfoService) UpdateGroup(ctx context.Context, id uuid.UUID, name string) (models.ContactsGroup, error) {
	const op = "services.InfoService.UpdateGroup"

	group := models.ContactsGroup{ID: id, Name: strings.TrimSpace(name)}
	if err := s.contacts.UpdateGroup(ctx, group); err != nil {
		return models.ContactsGroup{}, fmt.Errorf("%s: %w", op, err)
	}
	return group, nil
}

// DeleteGroup удаляет группу вместе с ее контактами
func (s *InfoService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	const op = "services.InfoService.DeleteGroup"

	if err := s.contacts.DeleteGroup(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *InfoService) GetGroup(ctx context.Context, id uuid.UUID) (models.ContactsGroup, error) {
	const op = "services.InfoService.GetGroup"

	group, err := s.contacts.GetGroupByID(ctx, id)
	if err != nil {
		return models.ContactsGroup{}, fmt.Errorf("%s: %w", op, err)
	}
	return group, nil
}

func (s *InfoService) ListGroups(ctx context.Context) ([]models.ContactsGroup, error) {
	const op = "services.InfoService.ListGroups"

	groups, err := s.contacts.GetGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return groups, nil
}

func (s *InfoService) CreateContact(ctx context.Context, req dto.ContactRequest) (models.Contact, error) {
	const op = "services.InfoService.CreateContact"

	log := s.log.With(
		slog.String("op", op),
		slog.String("main_title", req.MainTitle),
	)

	contact := req.ToDomain()
	if contact.Priority == 0 {
		contact.Priority = 1
	}

	id, err := s.contacts.CreateContact(ctx, contact)
	if err != nil {
		log.Error("failed to create contact", sl.Err(err))

		return models.Contact{}, fmt.Errorf("%s: %w", op, err)
	}
	contact.ID = id

	return contact, nil
}

func (s *InfoService) UpdateContact(ctx context.Context, id uuid.UUID, req dto.UpdateContactRequest) (models.Contact, error) {
	const op = "services.InfoService.UpdateContact"

	contact, err := s.contacts.GetContactByID(ctx, id)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%s: %w", op, err)
	}

	contact = req.Apply(contact)

	if err := s.contacts.UpdateContact(ctx, contact); err != nil {
		return models.Contact{}, fmt.Errorf("%s: %w", op, err)
	}
	return contact, nil
}

func (s *InfoService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	const op = "services.InfoService.DeleteContact"

	if err := s.contacts.DeleteContact(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *InfoService) GetContact(ctx context.Context, id uuid.UUID) (models.Contact, error) {
	const op = "services.InfoService.GetContact"

	contact, err := s.contacts.GetContactByID(ctx, id)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%s: %w", op, err)
	}
	return contact, nil
}

func (s *InfoService) ListContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	const op = "services.InfoService.ListContacts"

	contacts, err := s.contacts.GetContacts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return contacts, nil
}
