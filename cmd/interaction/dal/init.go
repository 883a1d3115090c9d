package dal

import (
	"VidTube.com/cmd/interaction/dal/db"
	"VidTube.com/cmd/interaction/dal/memdb"
	"VidTube.com/cmd/interaction/dal/repo"
	"VidTube.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

const (
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Init 按 store.backend 选择记录存储
func Init() (repo.Store, error) {
	switch config.ConfigInfo.Store.Backend {
	case BackendMemory:
		hlog.Warn("using in-memory record store, data is lost on restart")
		return memdb.New(), nil
	case BackendMySQL, "":
		gdb, err := db.Open()
		if err != nil {
			return nil, errors.Wrap(err, "open mysql")
		}
		return db.NewStore(gdb), nil
	}
	return nil, errors.Errorf("unknown store backend %q", config.ConfigInfo.Store.Backend)
}
