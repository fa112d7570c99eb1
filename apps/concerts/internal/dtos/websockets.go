package dtos

import (
	"time"
)

type SubscribeMessageDto struct {
	Subject string `json:"subject"`
}

type ProgressMessageDto struct {
	LastRefresh  *time.Time `json:"lastRefresh"`
	IsRefreshing bool       `json:"isRefreshing"`
}

func (dto SubscribeMessageDto) Topic() string {
	return dto.Subject
}

func (dto SubscribeMessageDto) Validate() (bool, map[string]string) {
	errs := make(map[string]string)
	if dto.Subject == "" {
		errs["subject"] = "must be provided"
	}
	return len(errs) == 0, errs
}
