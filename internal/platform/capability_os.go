//go:build !js && !wasip1

package platform

import "github.com/spf13/afero"

func hostCapability() Capability {
	return Capability{
		Server: true,
		Fs:     afero.NewOsFs(),
	}
}
