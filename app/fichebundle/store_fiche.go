package fichebundle

import (
	"fmt"
	"log"
	"time"

	"github.com/jinzhu/gorm"

	"cardioapp_backend/app/core"
)

// FicheStoreContract is the append-only archive of submitted fiches.
type FicheStoreContract interface {
	Append(token string, submittedAt time.Time, rawPayload string) (*FicheRecord, error)
	List(paging *core.Paging) ([]FicheRecord, error)
	ListAll() ([]FicheRecord, error)
}

// FicheStore persists fiches to the database. Concurrent appends are safe,
// each one is a single INSERT.
type FicheStore struct {
	ormDB *gorm.DB
}

func NewFicheStore(ormDB *gorm.DB) *FicheStore {
	if core.Config.Database.DoAutoMigrate {
		ormDB.AutoMigrate(&FicheRecord{})
	}
	return &FicheStore{ormDB: ormDB}
}

func (s *FicheStore) Append(token string, submittedAt time.Time, rawPayload string) (*FicheRecord, error) {
	record := FicheRecord{
		Token:       token,
		SubmittedAt: submittedAt,
		RawPayload:  rawPayload,
	}
	if err := s.ormDB.Create(&record).Error; err != nil {
		log.Println(err)
		return nil, fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}
	return &record, nil
}

// List returns one page of the archive newest first and fills in the total
// row count.
func (s *FicheStore) List(paging *core.Paging) ([]FicheRecord, error) {
	records := []FicheRecord{}
	err := s.ormDB.Order("submitted_at desc, id desc").Limit(paging.Limit).Offset(paging.Offset).Find(&records).Error
	if err != nil {
		log.Println(err)
		return nil, fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}
	s.ormDB.Model(&FicheRecord{}).Count(&paging.TotalCount)
	return records, nil
}

// ListAll returns the archive newest first.
func (s *FicheStore) ListAll() ([]FicheRecord, error) {
	records := []FicheRecord{}
	if err := s.ormDB.Order("submitted_at desc, id desc").Find(&records).Error; err != nil {
		log.Println(err)
		return nil, fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}
	return records, nil
}
