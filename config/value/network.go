package value

import (
	"fmt"
	"net"
	"regexp"
)

// address (host?:port)

type MustAddress string

func NewMustAddress(p *string, val string) *MustAddress {
	*p = val

	return (*MustAddress)(p)
}

func (s *MustAddress) Set(val string) error {
	// Check if the new value is only a port number
	re := regexp.MustCompile("^[0-9]+$")
	if re.MatchString(val) {
		val = ":" + val
	}

	*s = MustAddress(val)
	return nil
}

func (s *MustAddress) String() string {
	return string(*s)
}

func (s *MustAddress) Validate() error {
	_, port, err := net.SplitHostPort(string(*s))
	if err != nil {
		return err
	}

	re := regexp.MustCompile("^[0-9]+$")
	if !re.MatchString(port) {
		return fmt.Errorf("the port must be numerical")
	}

	return nil
}

func (s *MustAddress) IsEmpty() bool {
	return s.Validate() != nil
}
