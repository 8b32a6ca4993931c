package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/Freeeeeet/pt_scheduler/internal/model"
	"github.com/Freeeeeet/pt_scheduler/internal/scheduling"
)

var errUsage = errors.New("wrong arguments")

// commandArgs аргументы после команды: "/session 12" -> ["12"]
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("parse id %q: %w", args[0], errUsage)
	}
	return id, nil
}

// checkRequest разобранная команда /check
type checkRequest struct {
	FirstDate  civil.Date
	Selection  scheduling.SlotSelection
	TotalCount int
}

// parseCheckArgs разбирает "2024-01-08 9:00 10:00 6": дата, начало, конец, количество занятий
func parseCheckArgs(args []string) (*checkRequest, error) {
	if len(args) != 4 {
		return nil, errUsage
	}

	firstDate, err := civil.ParseDate(args[0])
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}
	start, err := model.ParseTimeCode(args[1])
	if err != nil {
		return nil, err
	}
	end, err := model.ParseTimeCode(args[2])
	if err != nil {
		return nil, err
	}
	if start.Minute()%30 != 0 || end.Minute()%30 != 0 || end <= start {
		return nil, fmt.Errorf("time range %s-%s: %w", start, end, errUsage)
	}
	count, err := strconv.Atoi(args[3])
	if err != nil || count <= 0 {
		return nil, fmt.Errorf("parse count %q: %w", args[3], errUsage)
	}

	// получасовые слоты [start, end)
	var slots []model.TimeCode
	for t := start; t < end && t != model.MidnightEnd; {
		slots = append(slots, t)
		next := t.AddHalfHour()
		if next == 0 {
			break
		}
		t = next
	}

	return &checkRequest{
		FirstDate:  firstDate,
		Selection:  scheduling.SlotSelection{firstDate: slots},
		TotalCount: count,
	}, nil
}
