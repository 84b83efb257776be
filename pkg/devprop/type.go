package devprop

import "fmt"

// Type is the native property-data-type tag (DEVPROPTYPE). The numbers align
// with devpropdef.h.
type Type uint32

const (
	TypeModArray Type = 0x00001000
	TypeModList  Type = 0x00002000

	TypeEmpty                    Type = 0x00000000
	TypeNull                     Type = 0x00000001
	TypeSByte                    Type = 0x00000002
	TypeByte                     Type = 0x00000003
	TypeInt16                    Type = 0x00000004
	TypeUInt16                   Type = 0x00000005
	TypeInt32                    Type = 0x00000006
	TypeUInt32                   Type = 0x00000007
	TypeInt64                    Type = 0x00000008
	TypeUInt64                   Type = 0x00000009
	TypeFloat                    Type = 0x0000000A
	TypeDouble                   Type = 0x0000000B
	TypeDecimal                  Type = 0x0000000C
	TypeGUID                     Type = 0x0000000D
	TypeCurrency                 Type = 0x0000000E
	TypeDate                     Type = 0x0000000F
	TypeFileTime                 Type = 0x00000010
	TypeBoolean                  Type = 0x00000011
	TypeString                   Type = 0x00000012
	TypeSecurityDescriptor       Type = 0x00000013
	TypeSecurityDescriptorString Type = 0x00000014
	TypeDevPropKey               Type = 0x00000015
	TypeDevPropType              Type = 0x00000016
	TypeError                    Type = 0x00000017
	TypeNTStatus                 Type = 0x00000018
	TypeStringIndirect           Type = 0x00000019

	TypeBinary     Type = TypeByte | TypeModArray
	TypeStringList Type = TypeString | TypeModList
)

var typeNames = map[Type]string{
	TypeEmpty:                    "DEVPROP_TYPE_EMPTY",
	TypeNull:                     "DEVPROP_TYPE_NULL",
	TypeSByte:                    "DEVPROP_TYPE_SBYTE",
	TypeByte:                     "DEVPROP_TYPE_BYTE",
	TypeInt16:                    "DEVPROP_TYPE_INT16",
	TypeUInt16:                   "DEVPROP_TYPE_UINT16",
	TypeInt32:                    "DEVPROP_TYPE_INT32",
	TypeUInt32:                   "DEVPROP_TYPE_UINT32",
	TypeInt64:                    "DEVPROP_TYPE_INT64",
	TypeUInt64:                   "DEVPROP_TYPE_UINT64",
	TypeFloat:                    "DEVPROP_TYPE_FLOAT",
	TypeDouble:                   "DEVPROP_TYPE_DOUBLE",
	TypeDecimal:                  "DEVPROP_TYPE_DECIMAL",
	TypeGUID:                     "DEVPROP_TYPE_GUID",
	TypeCurrency:                 "DEVPROP_TYPE_CURRENCY",
	TypeDate:                     "DEVPROP_TYPE_DATE",
	TypeFileTime:                 "DEVPROP_TYPE_FILETIME",
	TypeBoolean:                  "DEVPROP_TYPE_BOOLEAN",
	TypeString:                   "DEVPROP_TYPE_STRING",
	TypeSecurityDescriptor:       "DEVPROP_TYPE_SECURITY_DESCRIPTOR",
	TypeSecurityDescriptorString: "DEVPROP_TYPE_SECURITY_DESCRIPTOR_STRING",
	TypeDevPropKey:               "DEVPROP_TYPE_DEVPROPKEY",
	TypeDevPropType:              "DEVPROP_TYPE_DEVPROPTYPE",
	TypeError:                    "DEVPROP_TYPE_ERROR",
	TypeNTStatus:                 "DEVPROP_TYPE_NTSTATUS",
	TypeStringIndirect:           "DEVPROP_TYPE_STRING_INDIRECT",
	TypeBinary:                   "DEVPROP_TYPE_BINARY",
	TypeStringList:               "DEVPROP_TYPE_STRING_LIST",
}

// String implements the Stringer interface for Type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_TYPE_0x%X", uint32(t))
}

// Kind returns the value kind t decodes to. ok is false for tags without a
// conversion, including EMPTY and NULL.
func (t Type) Kind() (Kind, bool) {
	k, ok := typeKinds[t]
	return k, ok
}
