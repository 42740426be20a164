package types

const ContextUserKey = "user"

// SessionCookie is the name of the opaque session cookie.
const SessionCookie = "mv_session"
