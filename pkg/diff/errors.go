package diff

import scerr "github.com/arjunvs/scmdiff/pkg/common/err"

const pkgName = "diff"

// CodeIgnoreLoad marks a failure to load a .sourceignore file encountered
// during descent. Unlike a tree/blob load failure, it does not stop descent
// into the directory it was declared in; it only loses that one scope's
// rules for the affected side.
const CodeIgnoreLoad = "IGNORE_LOAD"

func storeErr(op string, err error) error {
	return scerr.Wrap(err, pkgName, op)
}

func ignoreLoadErr(op string, err error) error {
	return scerr.New(pkgName, CodeIgnoreLoad, op, "failed to load ignore file", err)
}
