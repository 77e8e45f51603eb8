//go:build js || wasip1

package platform

func hostCapability() Capability {
	return Capability{}
}
