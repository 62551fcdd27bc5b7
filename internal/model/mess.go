package model

import "time"

type MessMenu struct {
	ID       int          `json:"id"`
	Day      time.Weekday `json:"day" validate:"min=0,max=6"`
	MealType MealType     `json:"meal_type" validate:"enum"`
	Items    string       `json:"items" validate:"required"`
	IsActive bool         `json:"is_active"`
}

func (m MessMenu) RecordID() int { return m.ID }

func (m MessMenu) WithRecordID(id int) MessMenu { m.ID = id; return m }
