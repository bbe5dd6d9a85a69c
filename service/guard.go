package service

import (
	"Moodboard/dao/cache"
	"Moodboard/models"
	"Moodboard/pkg/errs"
	"Moodboard/pkg/metrics"
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

// lockSerial 串行化同一序列号的写操作, sno <= 0 表示锁定序列号分配
func lockSerial(ctx context.Context, locker cache.Locker, sno int64) (func(), error) {
	key, scope := cache.AllocLockKey, "alloc"
	if sno > 0 {
		key, scope = cache.SerialLockKey(sno), "serial"
	}
	unlock, err := locker.Lock(ctx, key)
	if errors.Is(err, cache.ErrLockTimeout) {
		metrics.LockBusy.WithLabelValues(scope).Inc()
		return nil, &errs.BusyError{Sno: sno}
	}
	if err != nil {
		return nil, errs.Store("lock "+key, err)
	}
	return unlock, nil
}

func checkSerial(sno int64) error {
	if sno <= 0 {
		return errs.Invalid("sno", "Serial No. must be a positive number")
	}
	return nil
}

func checkRange(field string, value, min, max int) error {
	if value < min || value > max {
		return &errs.RatingRangeError{Field: field, Value: value, Min: min, Max: max}
	}
	return nil
}

// normalizePrompt 去掉首尾空白后校验
func normalizePrompt(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errs.Invalid("image_prompts", "Prompt cannot be empty")
	}
	if utf8.RuneCountInString(text) > models.PromptTextMaxLen {
		return "", errs.Invalid("image_prompts", "Prompt exceeds %d characters", models.PromptTextMaxLen)
	}
	return text, nil
}

// parseStatus 大小写不敏感
func parseStatus(raw string) (models.ImageStatus, error) {
	status := models.ImageStatus(strings.ToUpper(strings.TrimSpace(raw))).Normalize()
	if !status.Valid() {
		return "", errs.Invalid("status", "unknown status %q", raw)
	}
	return status, nil
}
