// cmd/godbpf/flags.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/creativeyann17/go-dbpf/pkg/extract"
)

// codecFlag is a pflag.Value accepting none, zstd or xz
type codecFlag struct {
	codec extract.Codec
}

var _ pflag.Value = (*codecFlag)(nil)

func (f *codecFlag) String() string {
	if f.codec == "" {
		return string(extract.CodecNone)
	}
	return string(f.codec)
}

func (f *codecFlag) Set(s string) error {
	codec, err := extract.ParseCodec(s)
	if err != nil {
		return err
	}
	f.codec = codec
	return nil
}

func (f *codecFlag) Type() string { return "codec" }

// hexFlag is a pflag.Value holding an optional uint32 given in hex, with or
// without a 0x prefix
type hexFlag struct {
	value uint32
	set   bool
}

var _ pflag.Value = (*hexFlag)(nil)

func (f *hexFlag) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("0x%08X", f.value)
}

func (f *hexFlag) Set(s string) error {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid hex value %q", s)
	}
	f.value = uint32(v)
	f.set = true
	return nil
}

func (f *hexFlag) Type() string { return "hex" }
