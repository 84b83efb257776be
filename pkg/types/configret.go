package types

import "fmt"

// ConfigRet is a configuration manager (cfgmgr32) return code. The numbers
// align with the CR_* definitions in cfgmgr32.h.
type ConfigRet uint32

const (
	CR_SUCCESS                  ConfigRet = 0x00
	CR_DEFAULT                  ConfigRet = 0x01
	CR_OUT_OF_MEMORY            ConfigRet = 0x02
	CR_INVALID_POINTER          ConfigRet = 0x03
	CR_INVALID_FLAG             ConfigRet = 0x04
	CR_INVALID_DEVNODE          ConfigRet = 0x05
	CR_NO_SUCH_DEVNODE          ConfigRet = 0x0D
	CR_FAILURE                  ConfigRet = 0x13
	CR_REMOVE_VETOED            ConfigRet = 0x17
	CR_BUFFER_SMALL             ConfigRet = 0x1A
	CR_INVALID_DEVICE_ID        ConfigRet = 0x1E
	CR_INVALID_DATA             ConfigRet = 0x1F
	CR_NEED_RESTART             ConfigRet = 0x22
	CR_DEVICE_NOT_THERE         ConfigRet = 0x24
	CR_NO_SUCH_VALUE            ConfigRet = 0x25
	CR_WRONG_TYPE               ConfigRet = 0x26
	CR_ACCESS_DENIED            ConfigRet = 0x33
	CR_INVALID_PROPERTY         ConfigRet = 0x35
	CR_NO_SUCH_DEVICE_INTERFACE ConfigRet = 0x37
)

// String implements the Stringer interface for ConfigRet.
func (c ConfigRet) String() string {
	switch c {
	case CR_SUCCESS:
		return "CR_SUCCESS"
	case CR_DEFAULT:
		return "CR_DEFAULT"
	case CR_OUT_OF_MEMORY:
		return "CR_OUT_OF_MEMORY"
	case CR_INVALID_POINTER:
		return "CR_INVALID_POINTER"
	case CR_INVALID_FLAG:
		return "CR_INVALID_FLAG"
	case CR_INVALID_DEVNODE:
		return "CR_INVALID_DEVNODE"
	case CR_NO_SUCH_DEVNODE:
		return "CR_NO_SUCH_DEVNODE"
	case CR_FAILURE:
		return "CR_FAILURE"
	case CR_REMOVE_VETOED:
		return "CR_REMOVE_VETOED"
	case CR_BUFFER_SMALL:
		return "CR_BUFFER_SMALL"
	case CR_INVALID_DEVICE_ID:
		return "CR_INVALID_DEVICE_ID"
	case CR_INVALID_DATA:
		return "CR_INVALID_DATA"
	case CR_NEED_RESTART:
		return "CR_NEED_RESTART"
	case CR_DEVICE_NOT_THERE:
		return "CR_DEVICE_NOT_THERE"
	case CR_NO_SUCH_VALUE:
		return "CR_NO_SUCH_VALUE"
	case CR_WRONG_TYPE:
		return "CR_WRONG_TYPE"
	case CR_ACCESS_DENIED:
		return "CR_ACCESS_DENIED"
	case CR_INVALID_PROPERTY:
		return "CR_INVALID_PROPERTY"
	case CR_NO_SUCH_DEVICE_INTERFACE:
		return "CR_NO_SUCH_DEVICE_INTERFACE"
	default:
		return fmt.Sprintf("CR_0x%02X", uint32(c))
	}
}

// Succeeded reports whether c is CR_SUCCESS.
func (c ConfigRet) Succeeded() bool { return c == CR_SUCCESS }
