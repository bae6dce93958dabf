package models

import (
	"path/filepath"
	"strings"
)

// ServerDataDir is the folder under the data root holding per-server state.
const ServerDataDir = "mc_server_data"

// Identity keys all persisted state of one server. The address is lowercased
// so "MC.Example.COM" and "mc.example.com" share state; the protocol keeps
// Java and Bedrock servers on the same host apart. The port stays part of the
// address, so "host" and "host:25565" are still distinct.
type Identity struct {
	Address  string
	Protocol ProtocolType
}

func NewIdentity(address string, protocol ProtocolType) Identity {
	return Identity{Address: strings.ToLower(address), Protocol: protocol}
}

func (i Identity) String() string {
	return i.Protocol.String() + "/" + i.Address
}

// Dir is where this identity's files live under dataRoot.
func (i Identity) Dir(dataRoot string) string {
	return filepath.Join(dataRoot, ServerDataDir, i.Protocol.String(), pathSafe(i.Address))
}

// pathSafe keeps an address from escaping its directory.
func pathSafe(address string) string {
	s := strings.NewReplacer("/", "_", "\\", "_", "\x00", "_").Replace(address)
	if s == "." || s == ".." {
		return "_" + s
	}
	return s
}
