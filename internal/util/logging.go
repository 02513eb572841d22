package util

import (
	"fmt"
	"log"
)

// LogError пишет подробности в лог и возвращает обёрнутую ошибку.
// Клиенту этот текст напрямую не отдаётся.
func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}
