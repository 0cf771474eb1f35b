/**
 * @description
 * Profile settings: load and save the user's stored profile against the
 * weather-market API, with defaults drawn from the identity provider's
 * social-login data when no profile exists yet.
 *
 * @dependencies
 * - webapp/internal/weatherapi
 * - webapp/internal/identity
 *
 * @notes
 * - A missing profile is a valid state, not an error.
 * - Saving writes fields first and uploads the image in a separate call, so
 *   fields can persist even when the image upload fails; that partial
 *   outcome is reported, not hidden.
 * - Connectivity failures surface as weatherapi.ErrUnreachable so the page
 *   can show its dedicated "backend unreachable" notice.
 */

package services

import (
	"context"
	"io"

	"github.com/weather-project/webapp/internal/identity"
	"github.com/weather-project/webapp/internal/logger"
	"github.com/weather-project/webapp/internal/models"
	"github.com/weather-project/webapp/internal/weatherapi"
)

// SettingsView is the profile page's view model.
type SettingsView struct {
	// Profile is nil when the backend has no profile stored yet.
	Profile   *models.UserProfile
	Nickname  string
	Email     string
	AvatarURL string
}

// ImageUpload is a newly selected profile image.
type ImageUpload struct {
	Filename string
	Data     io.Reader
}

// SaveInput holds the editable settings fields.
type SaveInput struct {
	Nickname string
	Image    *ImageUpload
}

// SaveResult reports a save, including a possible partial failure: fields
// saved but image upload failed.
type SaveResult struct {
	Profile  *models.UserProfile
	ImageURL string
	ImageErr error
}

// ProfileService handles profile settings operations
type ProfileService struct {
	API *weatherapi.Client
}

// NewProfileService creates a new ProfileService
func NewProfileService(api *weatherapi.Client) *ProfileService {
	return &ProfileService{API: api}
}

// Load fetches the settings view for a user.
// Not-found populates defaults from the identity provider and returns no
// error. Connectivity failures still return defaults alongside the error so
// the page can render with its unreachable notice.
func (s *ProfileService) Load(ctx context.Context, user *identity.User) (SettingsView, error) {
	view := SettingsView{
		Email:     user.Email,
		AvatarURL: user.GooglePicture,
	}

	profile, err := s.API.GetProfile(ctx, user.ID)
	if err != nil {
		if weatherapi.IsUnreachable(err) {
			return view, err
		}
		// Application-level failure: behave like "no profile yet"
		logger.Error("ProfileService: profile fetch failed for %s: %v", user.ID, err)
		return view, nil
	}
	if profile == nil {
		return view, nil
	}

	view.Profile = profile
	view.Nickname = profile.Nickname
	if profile.Email != "" {
		view.Email = profile.Email
	}
	switch {
	case profile.ProfileImage != "":
		view.AvatarURL = s.API.ResolveImageURL(profile.ProfileImage)
	case profile.GooglePicture != "":
		view.AvatarURL = profile.GooglePicture
	}

	return view, nil
}

// Save upserts profile fields, then uploads the new image if one was
// selected in this editing session. The image call is deliberately separate
// and ordered after the field update.
func (s *ProfileService) Save(ctx context.Context, user *identity.User, in SaveInput) (*SaveResult, error) {
	update := weatherapi.ProfileUpdate{
		Nickname:      nullable(in.Nickname),
		Email:         nullable(user.Email),
		GoogleName:    nullable(user.GoogleName),
		GooglePicture: nullable(user.GooglePicture),
	}

	profile, err := s.API.UpdateProfile(ctx, user.ID, update)
	if err != nil {
		return nil, err
	}

	result := &SaveResult{Profile: profile}
	if in.Image == nil {
		return result, nil
	}

	updated, imageURL, err := s.API.UploadProfileImage(ctx, user.ID, in.Image.Filename, in.Image.Data)
	if err != nil {
		// Fields are already persisted; report the image failure on its own
		logger.Error("ProfileService: image upload failed for %s: %v", user.ID, err)
		result.ImageErr = err
		return result, nil
	}

	result.Profile = updated
	result.ImageURL = imageURL
	return result, nil
}

// nullable maps "" to a JSON null, matching the API's clear-on-null contract.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
