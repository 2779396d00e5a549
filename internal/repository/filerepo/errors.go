package filerepo

import (
	"errors"
	"fmt"

	"github.com/investogold/goldvest/internal/domain"
	"github.com/investogold/goldvest/pkg/uow"
)

// convertErr преобразует ошибку к стандартному виду для слоя репозитория.
// Добавляет форматированное сообщение контекста, тип бизнес-ошибки и оригинальное сообщение.
// Особенности:
//   - Отсутствующий ключ (uow.ErrKeyNotFound) возвращается как ErrRecordNotFound из domain.
//   - Нарушение уникальности (уже обнаруженное репозиторием) проходит как ErrDuplicateKey.
//   - Все остальные ошибки возвращаются как ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, uow.ErrKeyNotFound) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}
	if errors.Is(err, domain.ErrDuplicateKey) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrDuplicateKey)
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, domain.ErrUnknown, err.Error())
}
