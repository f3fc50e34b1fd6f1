package storage

import "context"

// Client armazena a imagem do schedule e devolve a URL pública.
type Client interface {
	UploadScheduleImage(ctx context.Context, imageData []byte) (string, error)
}
