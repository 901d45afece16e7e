package hashkit

type Server struct {
	Name   string
	Weight int64
	Index  uint32
}

// HashKit places keys on servers. Rebuild must not run concurrently with Dispatch.
type HashKit interface {
	Dispatch(key string) uint32
	Rebuild(servers []*Server)
}
