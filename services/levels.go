package services

import "github.com/deemkeen/herald/domain"

type LevelService struct{}

func (LevelService) BroadcastLevels() []domain.BroadcastLevel {
	return domain.BroadcastLevels()
}
