package sentinel

import "errors"

// ErrNotFound is returned (optionally wrapped) by snapshot stores for a
// missing or expired key, so the repository can treat it as "nothing saved".
var ErrNotFound = errors.New("not found")
