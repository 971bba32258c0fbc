package db

import "time"

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Design struct {
	ID        string
	Name      string
	OwnerID   string
	Motif     string
	Width     float64
	Height    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DesignVersion struct {
	ID        string
	DesignID  string
	Version   int32
	Panel     []byte
	CreatedBy string
	CreatedAt time.Time
}

type Asset struct {
	ID        string
	DesignID  string
	Version   int32
	URL       string
	Size      int64
	CreatedAt time.Time
}
