// Package devpkey lists well-known device property keys (DEVPKEY_*).
//
// The table only carries identities and declared types; it never defines
// conversions. Lookup resolves the short names used on the command line.
package devpkey

import (
	"sort"
	"strings"

	"github.com/joshuapare/pnpkit/pkg/devprop"
)

const (
	fmtDevice         = "{a45c254e-df1c-4efd-8020-67d146a850e0}"
	fmtInstance       = "{78c34fc8-104a-4aca-9ea4-524d52996e57}"
	fmtRelations      = "{4340a6c5-93fa-4706-972c-7b648008a5a7}"
	fmtPresence       = "{540b947e-8b40-45bc-a8a2-6a0b894cbda2}"
	fmtInstallDates   = "{83da6326-97a6-4088-9453-a1923f573b29}"
	fmtDriver         = "{a8b865dd-2e3d-4094-ad97-e593a70c75d6}"
	fmtContainer      = "{8c7ed206-3f8a-4827-b3ab-ae9e1faefc6c}"
	fmtName           = "{b725f130-47ef-101a-a5f1-02608c9eebac}"
	fmtInterfaceProps = "{026e516e-b814-414b-83cd-856d6fef4822}"
)

var (
	DeviceDesc       = devprop.MustKey(fmtDevice, 2, devprop.TypeString)
	HardwareIDs      = devprop.MustKey(fmtDevice, 3, devprop.TypeStringList)
	CompatibleIDs    = devprop.MustKey(fmtDevice, 4, devprop.TypeStringList)
	Service          = devprop.MustKey(fmtDevice, 6, devprop.TypeString)
	Class            = devprop.MustKey(fmtDevice, 9, devprop.TypeString)
	ClassGUID        = devprop.MustKey(fmtDevice, 10, devprop.TypeGUID)
	Driver           = devprop.MustKey(fmtDevice, 11, devprop.TypeString)
	Manufacturer     = devprop.MustKey(fmtDevice, 13, devprop.TypeString)
	FriendlyName     = devprop.MustKey(fmtDevice, 14, devprop.TypeString)
	LocationInfo     = devprop.MustKey(fmtDevice, 15, devprop.TypeString)
	PDOName          = devprop.MustKey(fmtDevice, 16, devprop.TypeString)
	UINumber         = devprop.MustKey(fmtDevice, 18, devprop.TypeUInt32)
	UpperFilters     = devprop.MustKey(fmtDevice, 19, devprop.TypeStringList)
	LowerFilters     = devprop.MustKey(fmtDevice, 20, devprop.TypeStringList)
	BusTypeGUID      = devprop.MustKey(fmtDevice, 21, devprop.TypeGUID)
	BusNumber        = devprop.MustKey(fmtDevice, 23, devprop.TypeUInt32)
	EnumeratorName   = devprop.MustKey(fmtDevice, 24, devprop.TypeString)
	Security         = devprop.MustKey(fmtDevice, 25, devprop.TypeSecurityDescriptor)
	SecuritySDS      = devprop.MustKey(fmtDevice, 26, devprop.TypeSecurityDescriptorString)
	Address          = devprop.MustKey(fmtDevice, 30, devprop.TypeUInt32)
	LocationPaths    = devprop.MustKey(fmtDevice, 37, devprop.TypeStringList)
	InstanceID       = devprop.MustKey(fmtInstance, 256, devprop.TypeString)
	DevNodeStatus    = devprop.MustKey(fmtRelations, 2, devprop.TypeUInt32)
	ProblemCode      = devprop.MustKey(fmtRelations, 3, devprop.TypeUInt32)
	Parent           = devprop.MustKey(fmtRelations, 8, devprop.TypeString)
	Children         = devprop.MustKey(fmtRelations, 9, devprop.TypeStringList)
	Siblings         = devprop.MustKey(fmtRelations, 10, devprop.TypeStringList)
	BusReportedDesc  = devprop.MustKey(fmtPresence, 4, devprop.TypeString)
	IsPresent        = devprop.MustKey(fmtPresence, 5, devprop.TypeBoolean)
	HasProblem       = devprop.MustKey(fmtPresence, 6, devprop.TypeBoolean)
	InstallDate      = devprop.MustKey(fmtInstallDates, 100, devprop.TypeFileTime)
	FirstInstallDate = devprop.MustKey(fmtInstallDates, 101, devprop.TypeFileTime)
	LastArrivalDate  = devprop.MustKey(fmtInstallDates, 102, devprop.TypeFileTime)
	LastRemovalDate  = devprop.MustKey(fmtInstallDates, 103, devprop.TypeFileTime)
	DriverDate       = devprop.MustKey(fmtDriver, 2, devprop.TypeFileTime)
	DriverVersion    = devprop.MustKey(fmtDriver, 3, devprop.TypeString)
	DriverInfPath    = devprop.MustKey(fmtDriver, 5, devprop.TypeString)
	DriverProvider   = devprop.MustKey(fmtDriver, 9, devprop.TypeString)
	ContainerID      = devprop.MustKey(fmtContainer, 2, devprop.TypeGUID)
	Name             = devprop.MustKey(fmtName, 10, devprop.TypeString)

	InterfaceFriendlyName = devprop.MustKey(fmtInterfaceProps, 2, devprop.TypeString)
	InterfaceEnabled      = devprop.MustKey(fmtInterfaceProps, 3, devprop.TypeBoolean)
	InterfaceClassGUID    = devprop.MustKey(fmtInterfaceProps, 4, devprop.TypeGUID)
)

var byName = map[string]devprop.Key{
	"devicedesc":            DeviceDesc,
	"hardwareids":           HardwareIDs,
	"compatibleids":         CompatibleIDs,
	"service":               Service,
	"class":                 Class,
	"classguid":             ClassGUID,
	"driver":                Driver,
	"manufacturer":          Manufacturer,
	"friendlyname":          FriendlyName,
	"locationinfo":          LocationInfo,
	"pdoname":               PDOName,
	"uinumber":              UINumber,
	"upperfilters":          UpperFilters,
	"lowerfilters":          LowerFilters,
	"bustypeguid":           BusTypeGUID,
	"busnumber":             BusNumber,
	"enumeratorname":        EnumeratorName,
	"security":              Security,
	"securitysds":           SecuritySDS,
	"address":               Address,
	"locationpaths":         LocationPaths,
	"instanceid":            InstanceID,
	"devnodestatus":         DevNodeStatus,
	"problemcode":           ProblemCode,
	"parent":                Parent,
	"children":              Children,
	"siblings":              Siblings,
	"busreporteddesc":       BusReportedDesc,
	"ispresent":             IsPresent,
	"hasproblem":            HasProblem,
	"installdate":           InstallDate,
	"firstinstalldate":      FirstInstallDate,
	"lastarrivaldate":       LastArrivalDate,
	"lastremovaldate":       LastRemovalDate,
	"driverdate":            DriverDate,
	"driverversion":         DriverVersion,
	"driverinfpath":         DriverInfPath,
	"driverprovider":        DriverProvider,
	"containerid":           ContainerID,
	"name":                  Name,
	"interfacefriendlyname": InterfaceFriendlyName,
	"interfaceenabled":      InterfaceEnabled,
	"interfaceclassguid":    InterfaceClassGUID,
}

// Lookup finds a key by its short name, ignoring case, underscores and an
// optional "DEVPKEY_Device_" prefix.
func Lookup(name string) (devprop.Key, bool) {
	n := strings.ToLower(name)
	n = strings.TrimPrefix(n, "devpkey_device_")
	n = strings.TrimPrefix(n, "devpkey_")
	n = strings.ReplaceAll(n, "_", "")
	k, ok := byName[n]
	return k, ok
}

// Names returns every short name Lookup accepts, sorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
