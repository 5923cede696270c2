// Package filestore хранит байты загруженных документов на локальном диске.
//
// Файл адресуется сгенерированным именем и сегментами пути владельца и
// отклика: <root>/<ownerID>/<applicationID>/<storedName>. Метаданные живут
// в PostgreSQL, здесь — только содержимое.
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// DiskStore реализует файловое хранилище в каталоге root.
type DiskStore struct {
	root string
}

// New создаёт DiskStore и каталог root, если его ещё нет.
func New(root string) (*DiskStore, error) {
	const op = "filestore.New"
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &DiskStore{root: root}, nil
}

func (d *DiskStore) path(ownerID, applicationID int64, storedName string) string {
	return filepath.Join(d.root,
		strconv.FormatInt(ownerID, 10),
		strconv.FormatInt(applicationID, 10),
		storedName)
}

// Save записывает содержимое документа и возвращает количество записанных байт.
func (d *DiskStore) Save(ownerID, applicationID int64, storedName string, r io.Reader) (int64, error) {
	const op = "filestore.Save"
	path := d.path(ownerID, applicationID, storedName)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	written, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return written, nil
}

// Open открывает содержимое документа для чтения.
func (d *DiskStore) Open(ownerID, applicationID int64, storedName string) (io.ReadCloser, error) {
	const op = "filestore.Open"
	f, err := os.Open(d.path(ownerID, applicationID, storedName))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

// Remove удаляет файл документа. Отсутствующий файл ошибкой не считается.
func (d *DiskStore) Remove(ownerID, applicationID int64, storedName string) error {
	const op = "filestore.Remove"
	err := os.Remove(d.path(ownerID, applicationID, storedName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveApplicationDir удаляет каталог отклика вместе со всеми файлами.
// Вызывается при удалении самого отклика.
func (d *DiskStore) RemoveApplicationDir(ownerID, applicationID int64) error {
	const op = "filestore.RemoveApplicationDir"
	dir := filepath.Join(d.root,
		strconv.FormatInt(ownerID, 10),
		strconv.FormatInt(applicationID, 10))
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
