package channels

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"

	"caslkey/contracts/caslapi"
	"caslkey/internal/apiclient"
)

const (
	MsgPhoneRequired   = "Phone number is required"
	MsgPhoneInvalid    = "Please enter a valid phone number"
	MsgCodeRequired    = "Verification code is required"
	MsgCodeInvalid     = "Please enter the 6-digit code"
	MsgCodeNotSent     = "Please request a verification code first"
	msgPhoneCooldown   = "Please wait %d seconds before requesting a new code"
	msgSendFailed      = "We couldn't send a code to that number"
	msgCodeNotAccepted = "That code didn't match. Please try again."
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	codePattern  = regexp.MustCompile(`^[0-9]{6}$`)
	phoneNoise   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

// Phone verifies a number with a one-time code. Requesting a code moves the
// channel to pending; entering the right code verifies it.
type Phone struct {
	*machine
	api      PhoneAPI
	cooldown time.Duration
	now      func() time.Time

	dataMu  sync.Mutex
	number  string
	sentAt  time.Time
	codeOut bool
}

func NewPhone(api PhoneAPI, opts ...Option) *Phone {
	o := buildOptions(opts)
	return &Phone{
		machine:  newMachine("phone", o),
		api:      api,
		cooldown: o.config.PhoneResendCooldown,
		now:      o.now,
	}
}

// NormalizePhone strips formatting characters.
func NormalizePhone(raw string) string {
	return phoneNoise.Replace(strings.TrimSpace(raw))
}

// RequestCode asks the backend to text a code. Requests inside the resend
// cooldown are refused locally.
func (p *Phone) RequestCode(ctx context.Context, phone, userID string) error {
	number := NormalizePhone(phone)
	switch {
	case number == "":
		return p.reject(MsgPhoneRequired)
	case !phonePattern.MatchString(number):
		return p.reject(MsgPhoneInvalid)
	}
	if wait := p.ResendIn(); wait > 0 {
		return p.reject(fmt.Sprintf(msgPhoneCooldown, int(math.Ceil(wait.Seconds()))))
	}

	gen, err := p.begin()
	if err != nil {
		return err
	}
	resp, err := p.api.RequestPhoneCode(ctx, caslapi.PhoneCodeRequest{UserID: userID, PhoneNumber: number})
	if err != nil {
		return p.fail(gen, err)
	}
	if !resp.Sent {
		msg := resp.Message
		if msg == "" {
			msg = msgSendFailed
		}
		if !p.finish(gen, StateFailed, msg) {
			return ErrSuperseded
		}
		return p.rejectedErr(msg)
	}
	if !p.codeSent(gen, number) {
		return ErrSuperseded
	}
	return nil
}

// codeSent records the number and moves gen to pending. It holds the machine
// lock so a Reset racing the request cannot be undone.
func (p *Phone) codeSent(gen uint64, number string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		p.logger.Debug("dropping stale phone code response")
		return false
	}
	p.dataMu.Lock()
	p.number = number
	p.sentAt = p.now()
	p.codeOut = true
	p.dataMu.Unlock()
	p.state = StatePending
	p.loading = false
	return true
}

// ResendIn is how long until another code may be requested.
func (p *Phone) ResendIn() time.Duration {
	p.dataMu.Lock()
	defer p.dataMu.Unlock()
	if p.sentAt.IsZero() {
		return 0
	}
	return max(p.sentAt.Add(p.cooldown).Sub(p.now()), 0)
}

// Number is the normalized number a code was last sent to.
func (p *Phone) Number() string {
	p.dataMu.Lock()
	defer p.dataMu.Unlock()
	return p.number
}

// VerifyCode checks the code the guest typed. It reports whether the number
// is now verified.
func (p *Phone) VerifyCode(ctx context.Context, code, userID string) (bool, error) {
	code = strings.TrimSpace(code)
	switch {
	case code == "":
		return false, p.reject(MsgCodeRequired)
	case !codePattern.MatchString(code):
		return false, p.reject(MsgCodeInvalid)
	}
	p.dataMu.Lock()
	sent := p.codeOut
	p.dataMu.Unlock()
	if !sent {
		return false, p.reject(MsgCodeNotSent)
	}

	gen, err := p.begin()
	if err != nil {
		return false, err
	}
	resp, err := p.api.VerifyPhoneCode(ctx, caslapi.PhoneVerifyRequest{UserID: userID, Code: code})
	if err != nil {
		// A transport failure leaves the sent code usable.
		p.finish(gen, StatePending, apiclient.Message(err))
		return false, apiclient.AsDomain(err)
	}
	if !resp.Verified {
		msg := resp.Message
		if msg == "" {
			msg = msgCodeNotAccepted
		}
		if !p.finish(gen, StatePending, msg) {
			return false, ErrSuperseded
		}
		return false, p.rejectedErr(msg)
	}
	if !p.finish(gen, StateVerified, "") {
		return false, ErrSuperseded
	}
	return true, nil
}

// Reset forgets the number, the cooldown and any outstanding code.
func (p *Phone) Reset() {
	p.reset()
	p.dataMu.Lock()
	p.number = ""
	p.sentAt = time.Time{}
	p.codeOut = false
	p.dataMu.Unlock()
}

func (p *Phone) Close() {
	p.close()
}
