package hashkit

// Modular places a key on hash(key) mod len(servers). Adding a server moves
// most keys, use Continuum when that matters.
type Modular struct {
	servers []*Server
	hashFn  HashFn
}

func NewModular(servers []*Server, hashFn HashFn) *Modular {
	if hashFn == nil {
		hashFn = Ahash
	}
	return &Modular{servers: servers, hashFn: hashFn}
}

func (m *Modular) Dispatch(key string) uint32 {
	if len(m.servers) == 0 {
		return 0
	}
	return m.servers[m.hashFn([]byte(key))%uint32(len(m.servers))].Index
}

func (m *Modular) Rebuild(servers []*Server) {
	m.servers = servers
}
