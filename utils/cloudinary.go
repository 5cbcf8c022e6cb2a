package utils

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/joho/godotenv"
)

// InitCloudinary initializes the Cloudinary client
func InitCloudinary() (*cloudinary.Cloudinary, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"))
	if err != nil {
		return nil, err
	}
	return cld, nil
}

// AvatarUploader stores avatars in Cloudinary under a fixed per-user
// public ID, so a new upload always replaces the previous avatar.
type AvatarUploader struct{}

// UploadAvatar uploads the image to avatars/<userID> and returns the
// public URL it can be fetched from.
func (AvatarUploader) UploadAvatar(ctx context.Context, userID string, file io.Reader) (string, error) {
	cld, err := InitCloudinary()
	if err != nil {
		return "", err
	}

	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       userID,
		Folder:         "avatars",
		Overwrite:      api.Bool(true),
		Transformation: "c_thumb,w_200,h_200", // Resize profile pictures
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
