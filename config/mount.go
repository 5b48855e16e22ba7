package config

// MountOptions names and traces the read-only snapshot mount.
type MountOptions struct {
	Debug  bool   // log every FUSE request; also on at trace verbosity
	FsName string // source shown in the mount table
	Name   string // filesystem type suffix, as in fuse.<Name>
}
