package mysql

const getVendorByUserSQL = `
SELECT id, user_id, business_name, business_type, verified
FROM vendors
WHERE user_id = ?
`

const getServiceSQL = `
SELECT id, vendor_id, type, name, description, price, is_active, images, details
FROM services
WHERE id = ?
`

const insertServiceSQL = `
INSERT INTO services
  (vendor_id, type, name, description, price, is_active, images, details)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const updateServiceSQL = `
UPDATE services SET
  name        = ?,
  description = ?,
  price       = ?,
  images      = ?,
  details     = ?,
  updated_at  = CURRENT_TIMESTAMP
WHERE id = ?
`

const deleteServiceSQL = `DELETE FROM services WHERE id = ?`

const setServiceActiveSQL = `
UPDATE services SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`

// room_types carry no vendor column on purpose: ownership is derived
// through hotel_id -> services.vendor_id on every access check.
const getRoomTypeSQL = `
SELECT id, hotel_id, name, capacity, base_price, is_active, images
FROM room_types
WHERE id = ?
`

const insertRoomTypeSQL = `
INSERT INTO room_types
  (hotel_id, name, capacity, base_price, is_active, images)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const updateRoomTypeSQL = `
UPDATE room_types SET
  name       = ?,
  capacity   = ?,
  base_price = ?,
  images     = ?,
  updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

const deleteRoomTypeSQL = `DELETE FROM room_types WHERE id = ?`

const setRoomTypeActiveSQL = `UPDATE room_types SET is_active = ? WHERE id = ?`

const insertUploadLogSQL = `
INSERT INTO upload_log
  (vendor_id, category, parent_id, path, public_url, content_type, size_bytes)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getHotelSQL = `
SELECT id, name, description, price, images
FROM services
WHERE id = ? AND type = 'hotel' AND is_active = 1
`

const listRoomTypesSQL = `
SELECT id, hotel_id, name, capacity, base_price, is_active, images
FROM room_types
WHERE hotel_id = ? AND is_active = 1
ORDER BY id
`
