package reconcile_offline

import "errors"

var (
	// ErrInternal возвращается, когда сверка прервана инфраструктурной
	// ошибкой. Частичный отчёт при этом сохраняется - уже слитые
	// бронирования не теряются
	ErrInternal = errors.New("reconcile_offline: internal error")
)
