package verify

import (
	"go.uber.org/zap"

	"github.com/Eric-Lautanen/velocut-ffmpeg-the-third/errors"
)

// Check computes the import table's difference against the allow-list.
// A non-empty difference fails with an error naming every offending
// dependency.
func Check(imports []string, allow AllowList) error {
	var offenders []string
	for _, name := range imports {
		if !allow.Contains(name) {
			offenders = append(offenders, name)
		}
	}
	if len(offenders) > 0 {
		Logger().Error("binary violates static-linkage contract",
			zap.Strings("offenders", offenders))
		return errors.NewUnexpectedDynamicImportError(offenders)
	}
	return nil
}

// Binary reads path's import table and checks it against the allow-list.
func Binary(path string, allow AllowList) error {
	imports, err := ImportTable(path)
	if err != nil {
		return err
	}
	Logger().Debug("inspected binary imports",
		zap.String("binary", path),
		zap.Strings("imports", imports))
	return Check(imports, allow)
}
