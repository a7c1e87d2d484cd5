package channels

import (
	"context"
	"net/url"
	"slices"
	"strings"

	"caslkey/contracts/caslapi"
)

// Social platforms accepted for profile verification.
const (
	SocialFacebook  = "facebook"
	SocialInstagram = "instagram"
	SocialLinkedIn  = "linkedin"
	SocialTwitter   = "twitter"
)

const (
	MsgSocialPlatform   = "Please select a social platform"
	MsgProfileRequired  = "Profile URL is required"
	MsgProfileInvalid   = "Please enter a valid profile URL"
	msgProfileNotLinked = "We couldn't verify that profile"
)

// SocialPlatforms lists the platforms in display order.
func SocialPlatforms() []string {
	return []string{SocialFacebook, SocialInstagram, SocialLinkedIn, SocialTwitter}
}

// Social verifies ownership of a public social profile in one round trip.
type Social struct {
	*machine
	api SocialAPI
}

func NewSocial(api SocialAPI, opts ...Option) *Social {
	o := buildOptions(opts)
	return &Social{
		machine: newMachine("social", o),
		api:     api,
	}
}

// Verify checks the profile and reports the settled state. A pending answer
// stays pending; the backend does not expose a status endpoint for it.
func (s *Social) Verify(ctx context.Context, platform, profileURL, userID string) (State, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	profileURL = strings.TrimSpace(profileURL)
	switch {
	case !slices.Contains(SocialPlatforms(), platform):
		return s.State(), s.reject(MsgSocialPlatform)
	case profileURL == "":
		return s.State(), s.reject(MsgProfileRequired)
	case !validProfileURL(profileURL):
		return s.State(), s.reject(MsgProfileInvalid)
	}

	gen, err := s.begin()
	if err != nil {
		return s.State(), err
	}
	resp, err := s.api.VerifySocialProfile(ctx, caslapi.SocialVerifyRequest{
		UserID:     userID,
		Platform:   platform,
		ProfileURL: profileURL,
	})
	if err != nil {
		return StateFailed, s.fail(gen, err)
	}

	state, msg := channelOutcome(resp, msgProfileNotLinked)
	if state == StatePending {
		s.pending(gen)
		return StatePending, nil
	}
	s.finish(gen, state, msg)
	if state == StateFailed {
		return state, s.rejectedErr(msg)
	}
	return state, nil
}

func validProfileURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (s *Social) Reset() {
	s.reset()
}

func (s *Social) Close() {
	s.close()
}
