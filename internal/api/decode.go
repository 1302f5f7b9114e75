package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"rhystmorgan/clientDesk/internal/models"
)

// decodeRecord applies the boundary defaults: missing strings become "",
// missing numbers become 0, missing status becomes ATIVO and a missing or
// empty photo stays absent. A record without a positive id is rejected.
// Unknown status values are kept as sent and reported through warn.
func decodeRecord(dto recordDTO, warn func(string)) (models.Record, error) {
	if dto.ID == nil || *dto.ID <= 0 {
		return models.Record{}, fmt.Errorf("record is missing a positive id")
	}

	record := models.Record{
		ID:           *dto.ID,
		Name:         stringOr(dto.Name),
		Email:        stringOr(dto.Email),
		Phone:        stringOr(dto.Phone),
		Address:      stringOr(dto.Address),
		Observations: stringOr(dto.Observations),
		Status:       models.StatusActive,
	}

	if dto.Income != nil {
		if *dto.Income < 0 {
			return models.Record{}, fmt.Errorf("record %d has negative income", record.ID)
		}
		record.Income = *dto.Income
	}

	if dto.NumOfDependents != nil {
		if *dto.NumOfDependents < 0 {
			return models.Record{}, fmt.Errorf("record %d has negative dependents", record.ID)
		}
		record.NumOfDependents = *dto.NumOfDependents
	}

	if dto.Status != nil && strings.TrimSpace(*dto.Status) != "" {
		record.Status = models.Status(strings.TrimSpace(*dto.Status))
		if !record.Status.IsKnown() && warn != nil {
			warn(fmt.Sprintf("record %d has unknown status %q", record.ID, record.Status))
		}
	}

	if dto.Photo != nil && *dto.Photo != "" {
		photo := *dto.Photo
		record.Photo = &photo
	}

	return record, nil
}

func decodeRecordList(body []byte, warn func(string)) ([]models.Record, error) {
	var dtos []recordDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(dtos))
	for i, dto := range dtos {
		record, err := decodeRecord(dto, warn)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// decodeWriteResponse reads the body of a create or replace. Servers answer
// with the stored record, with just {"id": n}, or with nothing at all; the
// submitted record fills whatever the answer leaves out.
func decodeWriteResponse(body []byte, submitted models.Record, warn func(string)) (models.Record, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		if submitted.ID <= 0 {
			return models.Record{}, fmt.Errorf("empty response carries no id")
		}
		return submitted, nil
	}

	var dto recordDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return models.Record{}, err
	}

	if dto.ID == nil && submitted.ID > 0 {
		id := submitted.ID
		dto.ID = &id
	}

	if dto.Name == nil && dto.Email == nil {
		if dto.ID == nil || *dto.ID <= 0 {
			return models.Record{}, fmt.Errorf("response is missing a positive id")
		}
		result := submitted.Clone()
		result.ID = *dto.ID
		return result, nil
	}

	return decodeRecord(dto, warn)
}

func encodeRecord(record models.Record) ([]byte, error) {
	return json.Marshal(writeDTO{
		Name:            record.Name,
		Email:           record.Email,
		Phone:           record.Phone,
		Address:         record.Address,
		Income:          record.Income,
		NumOfDependents: record.NumOfDependents,
		Status:          string(record.Status),
		Observations:    record.Observations,
		Photo:           record.Clone().Photo,
	})
}

func stringOr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
