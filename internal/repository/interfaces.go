package repository

import (
	"context"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/pedigree"

	"github.com/google/uuid"
)

type HorseRepository interface {
	pedigree.Store

	CreateHorse(ctx context.Context, horse models.Horse) (uuid.UUID, error)
	UpdateHorse(ctx context.Context, horse models.Horse) error
	DeleteHorse(ctx context.Context, id uuid.UUID) error
	GetHorseByID(ctx context.Context, id uuid.UUID) (models.Horse, error)
	GetHorses(ctx context.Context, filter models.HorseFilter) ([]models.Horse, int, error)
	SetHorsePhotos(ctx context.Context, horseID uuid.UUID, photoIDs []uuid.UUID) error

	AddParent(ctx context.Context, edge models.ParentEdge) error
	RemoveParent(ctx context.Context, childID, parentID uuid.UUID) error
	ChildrenOf(ctx context.Context, parentID uuid.UUID) ([]models.Horse, error)
}

type BreedRepository interface {
	CreateBreed(ctx context.Context, breed models.Breed) (uuid.UUID, error)
	UpdateBreed(ctx context.Context, breed models.Breed) error
	DeleteBreed(ctx context.Context, id uuid.UUID) error
	GetBreedByID(ctx context.Context, id uuid.UUID) (models.Breed, error)
	GetBreedByName(ctx context.Context, name string) (models.Breed, error)
	GetBreeds(ctx context.Context, name string) ([]models.Breed, error)
}

type OwnerRepository interface {
	CreateOwner(ctx context.Context, owner models.HorseOwner) (uuid.UUID, error)
	UpdateOwner(ctx context.Context, owner models.HorseOwner) error
	DeleteOwner(ctx context.Context, id uuid.UUID) error
	GetOwnerByID(ctx context.Context, id uuid.UUID) (models.HorseOwner, error)
	GetOwners(ctx context.Context, name string, types []models.OwnerType) ([]models.HorseOwner, error)
}

type PhotoRepository interface {
	CreatePhoto(ctx context.Context, photo models.Photo) (uuid.UUID, error)
	UpdatePhoto(ctx context.Context, photo models.Photo) error
	DeletePhoto(ctx context.Context, id uuid.UUID) error
	GetPhotoByID(ctx context.Context, id uuid.UUID) (models.Photo, error)
	GetPhotos(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, int, error)
	GetPhotosByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Photo, error)

	CreateCategory(ctx context.Context, category models.PhotoCategory) (uuid.UUID, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	GetCategories(ctx context.Context) ([]models.PhotoCategory, error)
}

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (uuid.UUID, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	UserByIdentifier(ctx context.Context, identifier string) (models.User, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error
}

type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, userID uuid.UUID, token string) error
	DeleteAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

type InfoRepository interface {
	CreateInfo(ctx context.Context, info models.KeyValueInformation) (uuid.UUID, error)
	UpdateInfo(ctx context.Context, info models.KeyValueInformation) error
	DeleteInfo(ctx context.Context, id uuid.UUID) error
	GetInfoByID(ctx context.Context, id uuid.UUID) (models.KeyValueInformation, error)
	GetInfos(ctx context.Context, filter models.InfoFilter) ([]models.KeyValueInformation, error)
}

type ContactRepository interface {
	CreateGroup(ctx context.Context, group models.ContactsGroup) (uuid.UUID, error)
	UpdateGroup(ctx context.Context, group models.ContactsGroup) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	GetGroupByID(ctx context.Context, id uuid.UUID) (models.ContactsGroup, error)
	GetGroups(ctx context.Context) ([]models.ContactsGroup, error)

	CreateContact(ctx context.Context, contact models.Contact) (uuid.UUID, error)
	UpdateContact(ctx context.Context, contact models.Contact) error
	DeleteContact(ctx context.Context, id uuid.UUID) error
	GetContactByID(ctx context.Context, id uuid.UUID) (models.Contact, error)
	GetContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
}
