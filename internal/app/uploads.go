package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const profilePictureBound = 200

// SaveUpload stores an uploaded file under the upload dir and returns the
// public path. No validation beyond picking an extension; cocktail images are
// served back as-is.
func (a *App) SaveUpload(original string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = ".img"
	}
	name := uuid.NewString() + ext
	dstPath := filepath.Join(a.cfg.UploadDir, name)

	if err := os.MkdirAll(a.cfg.UploadDir, 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// SaveProfilePicture decodes the upload, fits it into a 200x200 bounding box
// and stores it as JPEG.
func (a *App) SaveProfilePicture(src io.Reader) (string, error) {
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode profile picture: %w", err)
	}
	img = imaging.Fit(img, profilePictureBound, profilePictureBound, imaging.Lanczos)

	name := uuid.NewString() + ".jpg"
	dstPath := filepath.Join(a.cfg.UploadDir, name)

	if err := os.MkdirAll(a.cfg.UploadDir, 0o755); err != nil {
		return "", err
	}
	if err := imaging.Save(img, dstPath, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("save profile picture: %w", err)
	}
	return "/uploads/" + name, nil
}
