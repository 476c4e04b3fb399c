package services

import (
	"testing"

	"frontdesk-backend/apperror"
	"frontdesk-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryRequiresName(t *testing.T) {
	svc := &RoomCategoryService{}

	err := svc.Create(&models.RoomCategory{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdateCategoryRejectsEmptyPatch(t *testing.T) {
	svc := &RoomCategoryService{}

	_, err := svc.Update(1, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	blank := "  "
	_, err = svc.Update(1, &blank, nil)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
