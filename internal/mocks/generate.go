package mocks

//go:generate mockery --name RowStore --srcpkg github.com/windrow-lab/windrow/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name ResultStore --srcpkg github.com/windrow-lab/windrow/internal/engine --output ./engine --outpkg enginemocks --with-expecter
