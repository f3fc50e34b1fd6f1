package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Simulator substitui o R2 em dev local sem credenciais: não sobe nada,
// só devolve uma URL determinística a partir do conteúdo.
type Simulator struct {
	bucket   string
	endpoint string
}

func NewSimulator(bucket, endpoint string) *Simulator {
	return &Simulator{
		bucket:   strings.TrimSpace(bucket),
		endpoint: strings.TrimSpace(endpoint),
	}
}

func (r *Simulator) UploadScheduleImage(_ context.Context, imageData []byte) (string, error) {
	if len(imageData) == 0 {
		return "", fmt.Errorf("empty image data")
	}

	sum := sha256.Sum256(imageData)
	key := hex.EncodeToString(sum[:])

	ep := r.endpoint
	if ep == "" {
		ep = "https://r2.example.invalid"
	}
	bucket := r.bucket
	if bucket == "" {
		bucket = "streamfront"
	}

	return fmt.Sprintf("%s/%s/schedule/%s.png", strings.TrimRight(ep, "/"), bucket, key), nil
}
