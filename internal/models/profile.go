/**
 * @description
 * User profile model as served by the weather-market API.
 * Profiles are lazily created server-side; a missing profile is a valid
 * state, not an error, and defaults are filled from the identity provider's
 * social-login data.
 */

package models

// UserProfile is the stored profile for an identity-provider user
type UserProfile struct {
	ID            string `json:"id"`
	PrivyID       string `json:"privyId"`
	Email         string `json:"email,omitempty"`
	Nickname      string `json:"nickname,omitempty"`
	ProfileImage  string `json:"profileImage,omitempty"`
	GoogleName    string `json:"googleName,omitempty"`
	GooglePicture string `json:"googlePicture,omitempty"`
}
