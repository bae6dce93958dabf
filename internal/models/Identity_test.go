package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity_CaseInsensitive(t *testing.T) {
	a := NewIdentity("MC.Example.COM", ProtocolJava)
	b := NewIdentity("mc.example.com", ProtocolJava)

	assert.Equal(t, a, b)
	assert.Equal(t, a.Dir("/data"), b.Dir("/data"))
	assert.Equal(t, "java/mc.example.com", a.String())
}

func TestIdentity_ProtocolSeparatesState(t *testing.T) {
	java := NewIdentity("mc.example.com", ProtocolJava)
	bedrock := NewIdentity("mc.example.com", ProtocolBedrock)

	assert.NotEqual(t, java.Dir("/data"), bedrock.Dir("/data"))
	assert.Equal(t, filepath.Join("/data", ServerDataDir, "bedrock", "mc.example.com"), bedrock.Dir("/data"))
}

func TestIdentity_DirStaysUnderRoot(t *testing.T) {
	for _, address := range []string{"../../etc", "..", "a/b\\c", "."} {
		dir := NewIdentity(address, ProtocolAuto).Dir("/data")
		assert.Equal(t, filepath.Join("/data", ServerDataDir, "auto"), filepath.Dir(dir), address)
	}
}
