package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок Postgres, при которых транзакция проиграла конкурентной
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeUniqueViolation      = "23505"
	codeExclusionViolation   = "23P01"
)

// ErrSerializationFailure транзакция отменена из-за конфликта с параллельной транзакцией
var ErrSerializationFailure = errors.New("pgerrors: serialization failure")

// IsSerializationFailure проверяет, что ошибка вызвана конфликтом сериализации или дедлоком
func IsSerializationFailure(err error) bool {
	if errors.Is(err, ErrSerializationFailure) {
		return true
	}
	return hasCode(err, codeSerializationFailure, codeDeadlockDetected)
}

// IsConstraintViolation проверяет нарушение уникальности или exclusion-ограничения
func IsConstraintViolation(err error) bool {
	return hasCode(err, codeUniqueViolation, codeExclusionViolation)
}

func hasCode(err error, codes ...string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	for _, code := range codes {
		if string(pqErr.Code) == code {
			return true
		}
	}
	return false
}
