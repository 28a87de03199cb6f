package auth

// Resolution is what a session resolver produced for one request: either a
// principal (Present) or its absence, plus the failure if resolution errored.
type Resolution struct {
	Principal Principal
	Present   bool
	Err       error
}

// Anonymous is the resolution for a request without a session.
func Anonymous() Resolution {
	return Resolution{}
}

// Resolved wraps a principal found for the request.
func Resolved(p Principal) Resolution {
	return Resolution{Principal: p, Present: true}
}

// Failed records a resolver error; the principal is dropped.
func Failed(err error) Resolution {
	return Resolution{Err: err}
}

// DenyReason explains a denied decision. ReasonNone means allowed.
type DenyReason uint8

const (
	ReasonNone DenyReason = iota
	ReasonNoSession
	ReasonRoleMismatch
	ReasonResolverFailure
)

func (r DenyReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNoSession:
		return "no_session"
	case ReasonRoleMismatch:
		return "role_mismatch"
	case ReasonResolverFailure:
		return "resolver_failure"
	default:
		return "unknown"
	}
}

// Decision is the gate outcome: Allow, or Deny with a reason.
type Decision struct {
	reason  DenyReason
	allowed bool
}

func Allow() Decision {
	return Decision{allowed: true}
}

func Deny(reason DenyReason) Decision {
	if reason == ReasonNone {
		reason = ReasonRoleMismatch
	}
	return Decision{reason: reason}
}

// Allowed is false for the zero Decision.
func (d Decision) Allowed() bool {
	return d.allowed
}

func (d Decision) Reason() DenyReason {
	if d.allowed {
		return ReasonNone
	}
	if d.reason == ReasonNone {
		return ReasonRoleMismatch
	}
	return d.reason
}

// Err maps a denied decision to its sentinel error; nil when allowed.
func (d Decision) Err() error {
	if d.allowed {
		return nil
	}
	switch d.Reason() {
	case ReasonNoSession:
		return ErrNoSession
	case ReasonResolverFailure:
		return ErrResolverFailure
	default:
		return ErrRoleMismatch
	}
}

func (d Decision) String() string {
	if d.allowed {
		return "allow"
	}
	return "deny(" + d.Reason().String() + ")"
}

// Authorize decides whether a resolution satisfies req. Any resolver error,
// missing principal or missing requirement denies.
func Authorize(res Resolution, req Requirement) Decision {
	switch {
	case res.Err != nil:
		return Deny(ReasonResolverFailure)
	case !res.Present:
		return Deny(ReasonNoSession)
	case req == nil:
		return Deny(ReasonRoleMismatch)
	case !req.SatisfiedBy(res.Principal):
		return Deny(ReasonRoleMismatch)
	default:
		return Allow()
	}
}
