package pptxtpl

import (
	"bytes"
	"fmt"
	"io"

	"github.com/richardlehane/mscfb"
)

var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// detectCompoundFile rejects OLE compound files: legacy binary .ppt decks
// and encrypted .pptx (which Office stores as an EncryptedPackage stream).
func detectCompoundFile(r io.ReaderAt, size int64) error {
	if size < int64(len(oleSignature)) {
		return nil
	}
	head := make([]byte, len(oleSignature))
	if _, err := r.ReadAt(head, 0); err != nil {
		return nil
	}
	if !bytes.Equal(head, oleSignature) {
		return nil
	}

	doc, err := mscfb.New(io.NewSectionReader(r, 0, size))
	if err != nil {
		return fmt.Errorf("%w: unreadable compound file: %v", ErrInvalidFormat, err)
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "EncryptedPackage", "EncryptionInfo":
			return ErrEncrypted
		}
	}
	return fmt.Errorf("%w: legacy binary presentation", ErrInvalidFormat)
}
