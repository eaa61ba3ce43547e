package cli

import "github.com/viant/sbam"

// Options defines CLI flags. Storage flags are shared with sbam.Config.
type Options struct {
	sbam.Config
	ConfigURL string `short:"c" long:"config" description:"config URL (yaml or json)"`
	Format    string `short:"f" long:"format" description:"token format" choice:"string" choice:"json" choice:"jwt" choice:"oauth2" default:"string"`
	Verbose   bool   `short:"v" long:"verbose" description:"debug logging"`
}
