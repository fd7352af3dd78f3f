package chatservice

import "errors"

var (
	// ErrDeliveryFailed возвращается, когда сообщение не удалось доставить
	ErrDeliveryFailed = errors.New("chatservice: message delivery failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("chatservice: internal error")
)
