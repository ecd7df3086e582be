package v1

import (
	"github.com/shenikar/family_crisis_hub/internal/circle"
	"github.com/shenikar/family_crisis_hub/internal/models"
)

// DTOToMemberSeeds преобразует участников из запроса в данные для создания круга
func DTOToMemberSeeds(members []MemberSeedRequest) []circle.MemberSeed {
	seeds := make([]circle.MemberSeed, len(members))
	for i, m := range members {
		seeds[i] = circle.MemberSeed{Name: m.Name, Phone: m.Phone}
	}
	return seeds
}

// DTOToMemberPatch преобразует запрос частичного обновления в патч агрегата
func DTOToMemberPatch(dto UpdateMemberRequest) circle.MemberPatch {
	patch := circle.MemberPatch{
		Message:        dto.Message,
		LocationShared: dto.LocationShared,
	}
	if dto.Status != nil {
		status := models.Status(*dto.Status)
		patch.Status = &status
	}
	if dto.Location != nil {
		loc := DTOToCoordinates(*dto.Location)
		patch.Location = &loc
	}
	return patch
}

func DTOToCoordinates(dto LocationRequest) models.Coordinates {
	return models.Coordinates{Lat: dto.Lat, Lng: dto.Lng, Accuracy: dto.Accuracy}
}

// ModelToPreparednessResponse добавляет к плану процент выполнения
func ModelToPreparednessResponse(plan models.PreparednessPlan) PreparednessResponse {
	return PreparednessResponse{Plan: plan, Score: plan.Score()}
}
