package devprop

import "fmt"

// Kind is the variant held by a Value. The set is closed; every kind except
// KindNone has exactly one native Type and one Go type.
type Kind uint8

const (
	KindNone Kind = iota // absent value
	KindSByte
	KindByte
	KindInt16
	KindUInt16
	KindInt32
	KindUInt32
	KindInt64
	KindUInt64
	KindFloat
	KindDouble
	KindDecimal
	KindGUID
	KindBoolean
	KindString
	KindStringList
	KindBinary
	KindPropertyKey
	KindPropertyType
	KindDate
	KindFileTime
	KindError

	kindCount
)

// kindInfo is one row of the conversion table.
type kindInfo struct {
	name string
	typ  Type
	size int // fixed wire size, 0 for variable length
}

// kindTable is indexed by Kind. It is never modified after initialization.
var kindTable = [kindCount]kindInfo{
	KindNone:         {"None", TypeEmpty, 0},
	KindSByte:        {"SByte", TypeSByte, 1},
	KindByte:         {"Byte", TypeByte, 1},
	KindInt16:        {"Int16", TypeInt16, 2},
	KindUInt16:       {"UInt16", TypeUInt16, 2},
	KindInt32:        {"Int32", TypeInt32, 4},
	KindUInt32:       {"UInt32", TypeUInt32, 4},
	KindInt64:        {"Int64", TypeInt64, 8},
	KindUInt64:       {"UInt64", TypeUInt64, 8},
	KindFloat:        {"Float", TypeFloat, 4},
	KindDouble:       {"Double", TypeDouble, 8},
	KindDecimal:      {"Decimal", TypeDecimal, 16},
	KindGUID:         {"GUID", TypeGUID, 16},
	KindBoolean:      {"Boolean", TypeBoolean, 1},
	KindString:       {"String", TypeString, 0},
	KindStringList:   {"StringList", TypeStringList, 0},
	KindBinary:       {"Binary", TypeBinary, 0},
	KindPropertyKey:  {"PropertyKey", TypeDevPropKey, keySize},
	KindPropertyType: {"PropertyType", TypeDevPropType, 4},
	KindDate:         {"Date", TypeDate, 8},
	KindFileTime:     {"FileTime", TypeFileTime, 8},
	KindError:        {"Error", TypeError, 4},
}

// typeKinds maps native tags to kinds. Tags missing here have no conversion.
var typeKinds = map[Type]Kind{
	TypeSByte:       KindSByte,
	TypeByte:        KindByte,
	TypeInt16:       KindInt16,
	TypeUInt16:      KindUInt16,
	TypeInt32:       KindInt32,
	TypeUInt32:      KindUInt32,
	TypeInt64:       KindInt64,
	TypeUInt64:      KindUInt64,
	TypeFloat:       KindFloat,
	TypeDouble:      KindDouble,
	TypeDecimal:     KindDecimal,
	TypeGUID:        KindGUID,
	TypeBoolean:     KindBoolean,
	TypeString:      KindString,
	TypeStringList:  KindStringList,
	TypeBinary:      KindBinary,
	TypeDevPropKey:  KindPropertyKey,
	TypeDevPropType: KindPropertyType,
	TypeDate:        KindDate,
	TypeFileTime:    KindFileTime,
	TypeError:       KindError,
}

func (k Kind) valid() bool { return k < kindCount }

// String implements the Stringer interface for Kind.
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindTable[k].name
}

// Type returns the native tag used to encode k. ok is false for KindNone.
func (k Kind) Type() (Type, bool) {
	if k == KindNone || !k.valid() {
		return TypeEmpty, false
	}
	return kindTable[k].typ, true
}

// Size returns the fixed wire size of k, or 0 for variable-length kinds.
func (k Kind) Size() int {
	if !k.valid() {
		return 0
	}
	return kindTable[k].size
}
