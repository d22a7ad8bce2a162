package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Profile points at the raw source exports for one business. Empty paths
// mean the source is absent for that business.
type Profile struct {
	Name           string
	QuicksightFile string
	IgniteFile     string
	ZyloFile       string
	MSPFile        string
}

// Registry lists the businesses a deployment can report on. Backed by an
// ini file with one section per business:
//
//	[driftwood-coffee]
//	quicksight_file = /data/driftwood/quicksight.txt
//	ignite_file     = /data/driftwood/ignite.json
type Registry interface {
	Profiles() ([]string, error)
	Profile(name string) (*Profile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) Profiles() ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *iniRegistry) Profile(name string) (*Profile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", name)
	}

	return &Profile{
		Name:           name,
		QuicksightFile: section.Key("quicksight_file").String(),
		IgniteFile:     section.Key("ignite_file").String(),
		ZyloFile:       section.Key("zylo_file").String(),
		MSPFile:        section.Key("msp_file").String(),
	}, nil
}
