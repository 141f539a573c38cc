package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/collab-projects-api/internal/repository"
)

var (
	ErrUnknownSkill      = errors.New("one or more skills do not exist")
	ErrUnknownDiscipline = errors.New("one or more disciplines do not exist")
)

// uniqueUint64 returns ids without duplicates, keeping first occurrences.
func uniqueUint64(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	result := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func ensureSkills(repo repository.CatalogRepository, field string, ids []uint64) error {
	ids = uniqueUint64(ids)
	if len(ids) == 0 {
		return nil
	}
	count, err := repo.CountSkills(ids)
	if err != nil {
		return fmt.Errorf("failed to verify skills: %w", err)
	}
	if int(count) != len(ids) {
		return invalid(field, ErrUnknownSkill)
	}
	return nil
}

func ensureDisciplines(repo repository.CatalogRepository, field string, ids []uint64) error {
	ids = uniqueUint64(ids)
	if len(ids) == 0 {
		return nil
	}
	count, err := repo.CountDisciplines(ids)
	if err != nil {
		return fmt.Errorf("failed to verify disciplines: %w", err)
	}
	if int(count) != len(ids) {
		return invalid(field, ErrUnknownDiscipline)
	}
	return nil
}
