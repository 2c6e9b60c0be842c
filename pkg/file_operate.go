package pkg

import "os"

// CheckFileExist reports whether a file exists at filePath without
// following a trailing symlink.
func CheckFileExist(filePath string) (bool, error) {
	_, err := os.Lstat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// WriteToFile writes data to filePath, creating the file or truncating
// whatever was there.
func WriteToFile(filePath string, data []byte) error {
	return os.WriteFile(filePath, data, 0o644)
}
