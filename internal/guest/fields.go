package guest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	dErrors "caslkey/pkg/domain-errors"
)

// Field names, matching the JSON keys of FormData.
const (
	FieldName                     = "name"
	FieldEmail                    = "email"
	FieldPhone                    = "phone"
	FieldAddress                  = "address"
	FieldAirbnbProfile            = "airbnbProfile"
	FieldVrboProfile              = "vrboProfile"
	FieldOtherPlatformProfile     = "otherPlatformProfile"
	FieldOtherPlatformType        = "otherPlatformType"
	FieldConsentToBackgroundCheck = "consentToBackgroundCheck"
	FieldPlatform                 = "platform"
	FieldListingLink              = "listingLink"
	FieldCheckInDate              = "checkInDate"
	FieldCheckOutDate             = "checkOutDate"
	FieldStayPurpose              = "stayPurpose"
	FieldOtherPurpose             = "otherPurpose"
	FieldTotalGuests              = "totalGuests"
	FieldChildrenUnder12          = "childrenUnder12"
	FieldNonOvernightGuests       = "nonOvernightGuests"
	FieldTravelingNearHome        = "travelingNearHome"
	FieldZipCode                  = "zipCode"
	FieldUsedSTRBefore            = "usedSTRBefore"
	FieldPreviousStayLinks        = "previousStayLinks"
	FieldAgreeToRules             = "agreeToRules"
	FieldAgreeNoParties           = "agreeNoParties"
	FieldUnderstandFlagging       = "understandFlagging"
)

// ApplyField returns a copy of form with one field set. value is coerced the
// way a browser form would deliver it (strings, "true"/"on", numeric strings).
// Leaving purpose "Other" clears otherPurpose; unchecking travelingNearHome
// clears zipCode.
func ApplyField(form FormData, name string, value any) (FormData, error) {
	next := form
	var err error

	switch name {
	case FieldName:
		next.Name, err = asString(name, value)
	case FieldEmail:
		next.Email, err = asString(name, value)
	case FieldPhone:
		next.Phone, err = asString(name, value)
	case FieldAddress:
		next.Address, err = asString(name, value)
	case FieldAirbnbProfile:
		next.AirbnbProfile, err = asString(name, value)
	case FieldVrboProfile:
		next.VrboProfile, err = asString(name, value)
	case FieldOtherPlatformProfile:
		next.OtherPlatformProfile, err = asString(name, value)
	case FieldOtherPlatformType:
		var s string
		if s, err = asString(name, value); err == nil {
			t := OtherPlatformType(s)
			if t != "" && !t.Valid() {
				return form, invalidField(name, "unknown platform type")
			}
			next.OtherPlatformType = t
		}
	case FieldConsentToBackgroundCheck:
		next.ConsentToBackgroundCheck, err = asBool(name, value)
	case FieldPlatform:
		var s string
		if s, err = asString(name, value); err == nil {
			p := Platform(s)
			if p != "" && !p.Valid() {
				return form, invalidField(name, "unknown platform")
			}
			next.Platform = p
		}
	case FieldListingLink:
		next.ListingLink, err = asString(name, value)
	case FieldCheckInDate:
		next.CheckInDate, err = asString(name, value)
	case FieldCheckOutDate:
		next.CheckOutDate, err = asString(name, value)
	case FieldStayPurpose:
		var s string
		if s, err = asString(name, value); err == nil {
			p := Purpose(s)
			if p != "" && !p.Valid() {
				return form, invalidField(name, "unknown purpose")
			}
			next.StayPurpose = p
			if p != PurposeOther {
				next.OtherPurpose = ""
			}
		}
	case FieldOtherPurpose:
		next.OtherPurpose, err = asString(name, value)
	case FieldTotalGuests:
		next.TotalGuests, err = asInt(name, value)
	case FieldChildrenUnder12:
		next.ChildrenUnder12, err = asBool(name, value)
	case FieldNonOvernightGuests:
		next.NonOvernightGuests, err = asBool(name, value)
	case FieldTravelingNearHome:
		next.TravelingNearHome, err = asBool(name, value)
		if err == nil && !next.TravelingNearHome {
			next.ZipCode = ""
		}
	case FieldZipCode:
		next.ZipCode, err = asString(name, value)
	case FieldUsedSTRBefore:
		next.UsedSTRBefore, err = asBool(name, value)
	case FieldPreviousStayLinks:
		next.PreviousStayLinks, err = asString(name, value)
	case FieldAgreeToRules:
		next.AgreeToRules, err = asBool(name, value)
	case FieldAgreeNoParties:
		next.AgreeNoParties, err = asBool(name, value)
	case FieldUnderstandFlagging:
		next.UnderstandFlagging, err = asBool(name, value)
	default:
		return form, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown field %q", name))
	}
	if err != nil {
		return form, err
	}
	return next, nil
}

func invalidField(name, msg string) error {
	return dErrors.New(dErrors.CodeInvalidInput, name+": "+msg)
}

func asString(name string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return "", invalidField(name, "expected text")
}

func asBool(name string, value any) (bool, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "yes", "1":
			return true, nil
		case "false", "off", "no", "0", "":
			return false, nil
		}
	}
	return false, invalidField(name, "expected true or false")
}

func asInt(name string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			break
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return n, nil
		}
	}
	return 0, invalidField(name, "expected a whole number")
}
