package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"vehiql/internal/domain/entity"
)

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

// VerifyToken checks a Firebase ID token and returns its uid.
func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

// GetProfile loads the provider-side profile used to mirror a user locally.
func (f *FirebaseAuthClient) GetProfile(ctx context.Context, uid string) (*entity.IdentityProfile, error) {
	record, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("get firebase user %s: %w", uid, err)
	}

	profile := &entity.IdentityProfile{UID: record.UID}
	if record.UserInfo != nil {
		profile.Email = record.Email
		profile.Name = record.DisplayName
		profile.ImageURL = record.PhotoURL
		profile.Phone = record.PhoneNumber
	}
	return profile, nil
}
