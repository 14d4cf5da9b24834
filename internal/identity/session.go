package identity

// Role is the mode a client operates in.
type Role int

const (
	RoleAnonymous Role = iota
	RoleTraveler
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleTraveler:
		return "traveler"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// adminMarker is the reserved token value that identifies the administrator.
const adminMarker = "admin"

// Session is the resolved identity of the client: Anonymous, Traveler{id} or Admin.
type Session struct {
	role Role
	id   string
}

func Anonymous() Session { return Session{role: RoleAnonymous} }

// Traveler returns a traveler session for a passenger id. An empty id is anonymous.
func Traveler(id string) Session {
	if id == "" {
		return Anonymous()
	}
	return Session{role: RoleTraveler, id: id}
}

func Admin() Session { return Session{role: RoleAdmin} }

// Resolve classifies a stored token. It is the only place a token is compared
// with the admin marker.
func Resolve(token string) Session {
	switch token {
	case "":
		return Anonymous()
	case adminMarker:
		return Admin()
	default:
		return Traveler(token)
	}
}

func (s Session) Role() Role { return s.role }

func (s Session) IsAnonymous() bool { return s.role == RoleAnonymous }

// Token is the opaque value persisted for the session.
func (s Session) Token() string {
	switch s.role {
	case RoleAdmin:
		return adminMarker
	case RoleTraveler:
		return s.id
	default:
		return ""
	}
}

// PassengerID reports the traveler's id. Admin and anonymous sessions have none.
func (s Session) PassengerID() (string, bool) {
	if s.role != RoleTraveler {
		return "", false
	}
	return s.id, true
}

func (s Session) String() string {
	if s.role == RoleTraveler {
		return "traveler(" + s.id + ")"
	}
	return s.role.String()
}
