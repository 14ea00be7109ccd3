package dao

import (
	"errors"
	"time"
)

var (
	ErrRoundNotFound = errors.New("round not found")
	ErrRoomNotFound  = errors.New("room not found")
	ErrTeamNotFound  = errors.New("team not found")
	ErrJudgeNotFound = errors.New("judge not found")
)

type Round struct {
	ID         uint   `gorm:"primaryKey"`
	Seq        int    `gorm:"not null"`
	Name       string `gorm:"not null"`
	Kind       string `gorm:"not null"` // "preliminary" or "elimination"
	DrawStatus string `gorm:"not null;default:'none'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Room struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

type Team struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"not null"`
	Number int    `gorm:"not null;uniqueIndex"`
}

type Judge struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"not null"`
	Number int    `gorm:"not null;uniqueIndex"`
}
